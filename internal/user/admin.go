package user

import (
	"fmt"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
)

// IsStaff vérifie si un utilisateur a accès à l'administration
func IsStaff(userID uint) (bool, error) {
	var isStaff bool
	// Scan ne renvoie pas ErrRecordNotFound : utilisateur introuvable => false
	if err := database.DB.Model(&User{}).Select("is_staff").Where("id = ?", userID).Scan(&isStaff).Error; err != nil {
		return false, err
	}
	return isStaff, nil
}

// SetStaff donne ou retire l'accès à l'administration (et le statut superuser)
func SetStaff(userID uint, staff bool) error {
	res := database.DB.Model(&User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_staff": staff, "is_superuser": staff})
	if res.Error != nil {
		return fmt.Errorf("update staff flag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
