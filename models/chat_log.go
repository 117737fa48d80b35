package models

// ChatLog is an immutable message record for one room. ModalOpenFlag is the
// only field ever mutated after creation: it flips to true exactly once when
// an observer consumes an unconsumed confession.
type ChatLog struct {
	RoomID        string `dynamodbav:"roomId" json:"roomId"`
	MessageID     string `dynamodbav:"messageId" json:"messageId"`
	Name          string `dynamodbav:"name" json:"name"`
	Msg           string `dynamodbav:"msg" json:"msg"`
	Date          int64  `dynamodbav:"date" json:"date"`
	ModalOpenFlag bool   `dynamodbav:"modalOpenFlag" json:"modalOpenFlag"`
	AnnounceFlag  bool   `dynamodbav:"announceFlag,omitempty" json:"announceFlag,omitempty"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
