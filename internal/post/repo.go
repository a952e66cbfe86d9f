package post

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
)

var ErrNotFound = errors.New("post not found")

// Filter restreint une liste de posts ; les champs vides sont ignorés
type Filter struct {
	UserID   uint
	Status   string
	Platform string
	Search   string
}

func (f Filter) apply(query *gorm.DB) *gorm.DB {
	if f.UserID != 0 {
		query = query.Where("posts.user_id = ?", f.UserID)
	}
	if f.Status != "" {
		query = query.Where("posts.status = ?", f.Status)
	}
	if f.Platform != "" {
		query = query.Where("posts.platform = ?", f.Platform)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(posts.caption) LIKE ? OR LOWER(posts.hashtags) LIKE ?", pattern, pattern)
	}
	return query
}

func withRelations(query *gorm.DB) *gorm.DB {
	return query.Preload("User").Preload("ImagePrompt")
}

// List renvoie les posts du plus récent au plus ancien
func List(f Filter) ([]Post, error) {
	var posts []Post
	query := f.apply(withRelations(database.DB.Model(&Post{})))
	if err := query.Order("posts.created_at DESC, posts.id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// ListPage sert l'administration : pagination et total
func ListPage(f Filter, limit, offset int) ([]Post, int64, error) {
	var total int64
	if err := f.apply(database.DB.Model(&Post{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	var posts []Post
	query := f.apply(withRelations(database.DB.Model(&Post{})))
	if err := query.Order("posts.created_at DESC, posts.id DESC").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts page: %w", err)
	}
	return posts, total, nil
}

// Create insère le post et, si promptText n'est pas vide, son image prompt
// dans la même transaction
func Create(p *Post, promptText string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "ImagePrompt").Create(p).Error; err != nil {
			return err
		}
		if promptText == "" {
			return nil
		}
		prompt := ImagePrompt{PostID: p.ID, PromptText: promptText}
		if err := tx.Create(&prompt).Error; err != nil {
			return err
		}
		p.ImagePrompt = &prompt
		return nil
	})
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// FindOwned ne trouve un post que s'il appartient à userID
func FindOwned(userID, id uint) (*Post, error) {
	var p Post
	if err := withRelations(database.DB).First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

// Update applique uniquement les colonnes fournies puis recharge le post
func Update(p *Post, updates map[string]interface{}) (*Post, error) {
	if len(updates) > 0 {
		if err := database.DB.Model(&Post{ID: p.ID}).Where("user_id = ?", p.UserID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
	}
	return FindOwned(p.UserID, p.ID)
}

// Delete supprime le post et son image prompt
func Delete(userID, id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var p Post
		if err := tx.Select("id").First(&p, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find post: %w", err)
		}
		// Redondant avec ON DELETE CASCADE, sauf si les clés étrangères sont désactivées
		if err := tx.Where("post_id = ?", p.ID).Delete(&ImagePrompt{}).Error; err != nil {
			return fmt.Errorf("delete image prompt: %w", err)
		}
		if err := tx.Delete(&Post{}, p.ID).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

// Counts regroupe les posts d'un utilisateur par valeur de column
func Counts(userID uint, column string) (map[string]int64, error) {
	switch column {
	case "status", "platform":
	default:
		return nil, fmt.Errorf("unsupported count column %q", column)
	}

	var rows []struct {
		Label string
		Total int64
	}
	err := database.DB.Model(&Post{}).
		Select(column+" AS label, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count posts by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Label] = r.Total
	}
	return counts, nil
}
