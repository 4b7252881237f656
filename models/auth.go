package models

import "time"

type JsonModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GoogleAuthSignIn struct {
	IdToken  string `json:"idToken" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

type AppleAuthRequest struct {
	IdentityToken     string `json:"identity_token" validate:"required"`
	Platform          string `json:"platform" validate:"required"`
	AuthorizationCode string `json:"authorization_code" validate:"required"`
}

type SignInOut struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	New    bool   `json:"new"`
	Avatar string `json:"avatar"`

	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserMeInfoOut struct {
	Id                   string  `json:"id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	AvatarURL            string  `json:"avatar_url"`
	ReceiveNotifications bool    `json:"receive_notifications"`
	PhotoSet             bool    `json:"photo_set"`
	PhotoURL             *string `json:"photo_url"`
	DailyTryOnLimit      int32   `json:"daily_try_on_limit"`
	TodayTryOnCount      int64   `json:"today_try_on_count"`
}
