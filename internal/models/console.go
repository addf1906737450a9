package models

import "time"

// Console-account links. One row per user per platform.

type PlayStation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	PSNUsername string    `json:"psn_username" gorm:"size:80"`
	CreatedAt   time.Time `json:"created_at"`
}

type Xbox struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	XboxGamertag string    `json:"xbox_gamertag" gorm:"size:80"`
	CreatedAt    time.Time `json:"created_at"`
}

type Steam struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	SteamUsername string    `json:"steam_username" gorm:"size:80"`
	CreatedAt     time.Time `json:"created_at"`
}

type Nintendo struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	FriendCode string    `json:"friend_code" gorm:"size:80"`
	CreatedAt  time.Time `json:"created_at"`
}

type Discord struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	DiscordUsername string    `json:"discord_username" gorm:"size:80"`
	CreatedAt       time.Time `json:"created_at"`
}

// ConsoleAccounts aggregates every linked console account for one user.
type ConsoleAccounts struct {
	PlayStation *PlayStation `json:"playstation"`
	Xbox        *Xbox        `json:"xbox"`
	Steam       *Steam       `json:"steam"`
	Nintendo    *Nintendo    `json:"nintendo"`
	Discord     *Discord     `json:"discord"`
}

// UpdateConsoleRequest bodies, one per platform.

type UpdatePlayStationRequest struct {
	PSNUsername string `json:"psn_username" validate:"required,max=80"`
}

type UpdateXboxRequest struct {
	XboxGamertag string `json:"xbox_gamertag" validate:"required,max=80"`
}

type UpdateSteamRequest struct {
	SteamUsername string `json:"steam_username" validate:"required,max=80"`
}

type UpdateNintendoRequest struct {
	FriendCode string `json:"friend_code" validate:"required,max=80"`
}

type UpdateDiscordRequest struct {
	DiscordUsername string `json:"discord_username" validate:"required,max=80"`
}
