package models

import "time"

// ✅ Genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// RoomNumbers is the fixed set of chat rooms shown on the room list
var RoomNumbers = []string{"1", "2", "3", "4", "5", "6"}

// Scripted confession messages
const (
	ConfessionMessage      = "愛してます"
	ConfessionReplyMessage = "私も愛してます"
)

// Profile vocabularies. Matching only ever iterates these fixed sets,
// never whatever keys happen to exist on a stored profile.
var (
	PersonalityOptions      = []string{"やさしい", "オラオラ", "しずか", "おもしろい"}
	AgeRangeOptions         = []string{"18 - 25", "25 - 30", "30 - 40", "40 - 50", "50 - 60"}
	MaleAppearanceOptions   = []string{"爽やか系", "ワイルド系", "韓国系"}
	FemaleAppearanceOptions = []string{"かわいい系", "キレイ系", "かわキレイ系"}
)

// Confession flow timing
const (
	ConfessionOfferInterval  = 30 * time.Second
	ConfessionCountdownStart = 10
)

// RecentMessageLimit bounds the live message feed per room
const RecentMessageLimit = 10

// RoomCapacity is fixed: two occupants make a room full
const RoomCapacity = 2
