package models

import "time"

type UserAccount struct {
	JsonModel
	Name   string `json:"name"`
	Email  string `json:"email" gorm:"unique"`
	Banned bool   `gorm:"default:false" json:"-"`
	LastIp string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status               string     `json:"-"`
	GoogleID             string     `json:"-"`
	AppleID              string     `json:"-"`
	Platform             Platform   `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	AvatarURL            string     `json:"avatar_url"`
	ReceiveNotifications bool       `gorm:"default:true" json:"receive_notifications"`
	ConfirmedDeleteDate  *time.Time `json:"-"`
}

type UserPushToken struct {
	JsonModel
	UserAccount   UserAccount `json:"-"`
	UserAccountID uint        `json:"-"`
	Token         string      `json:"token"`
	Platform      Platform    `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Active        bool        `gorm:"default:true" json:"active"`
}

type UserPushTokenIn struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,platform"`
}
