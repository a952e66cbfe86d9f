package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
)

var ErrNotFound = errors.New("user not found")

func ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := database.DB.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

func ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := database.DB.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users by username: %w", err)
	}
	return count > 0, nil
}

func Create(u *User) error {
	if err := database.DB.Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func FindByUsername(username string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &u, nil
}

func FindByID(id uint) (*User, error) {
	var u User
	if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}
