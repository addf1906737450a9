package repositories

import (
	"errors"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile and console-link data
type ProfileRepository interface {
	GetByUserID(userID uint) (*models.Profile, error)
	Save(profile *models.Profile) error
	GetConsoleAccounts(userID uint) (*models.ConsoleAccounts, error)
	UpsertPlayStation(userID uint, psnUsername string) error
	UpsertXbox(userID uint, gamertag string) error
	UpsertSteam(userID uint, steamUsername string) error
	UpsertNintendo(userID uint, friendCode string) error
	UpsertDiscord(userID uint, discordUsername string) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) Save(profile *models.Profile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresProfileRepository) GetConsoleAccounts(userID uint) (*models.ConsoleAccounts, error) {
	accounts := &models.ConsoleAccounts{}

	var ps models.PlayStation
	if err := r.db.Where("user_id = ?", userID).First(&ps).Error; err == nil {
		accounts.PlayStation = &ps
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	var xbox models.Xbox
	if err := r.db.Where("user_id = ?", userID).First(&xbox).Error; err == nil {
		accounts.Xbox = &xbox
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	var steam models.Steam
	if err := r.db.Where("user_id = ?", userID).First(&steam).Error; err == nil {
		accounts.Steam = &steam
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	var nintendo models.Nintendo
	if err := r.db.Where("user_id = ?", userID).First(&nintendo).Error; err == nil {
		accounts.Nintendo = &nintendo
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	var discord models.Discord
	if err := r.db.Where("user_id = ?", userID).First(&discord).Error; err == nil {
		accounts.Discord = &discord
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err)
	}

	return accounts, nil
}

func (r *PostgresProfileRepository) UpsertPlayStation(userID uint, psnUsername string) error {
	var ps models.PlayStation
	err := r.db.Where("user_id = ?", userID).First(&ps).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ps = models.PlayStation{UserID: userID}
	} else if err != nil {
		return storeError(err)
	}
	ps.PSNUsername = psnUsername
	if err := r.db.Save(&ps).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpsertXbox(userID uint, gamertag string) error {
	var xbox models.Xbox
	err := r.db.Where("user_id = ?", userID).First(&xbox).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		xbox = models.Xbox{UserID: userID}
	} else if err != nil {
		return storeError(err)
	}
	xbox.XboxGamertag = gamertag
	if err := r.db.Save(&xbox).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpsertSteam(userID uint, steamUsername string) error {
	var steam models.Steam
	err := r.db.Where("user_id = ?", userID).First(&steam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		steam = models.Steam{UserID: userID}
	} else if err != nil {
		return storeError(err)
	}
	steam.SteamUsername = steamUsername
	if err := r.db.Save(&steam).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpsertNintendo(userID uint, friendCode string) error {
	var nintendo models.Nintendo
	err := r.db.Where("user_id = ?", userID).First(&nintendo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		nintendo = models.Nintendo{UserID: userID}
	} else if err != nil {
		return storeError(err)
	}
	nintendo.FriendCode = friendCode
	if err := r.db.Save(&nintendo).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *PostgresProfileRepository) UpsertDiscord(userID uint, discordUsername string) error {
	var discord models.Discord
	err := r.db.Where("user_id = ?", userID).First(&discord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		discord = models.Discord{UserID: userID}
	} else if err != nil {
		return storeError(err)
	}
	discord.DiscordUsername = discordUsername
	if err := r.db.Save(&discord).Error; err != nil {
		return storeError(err)
	}
	return nil
}
