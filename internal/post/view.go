package post

import "time"

type ImagePromptView struct {
	ID         uint      `json:"id"`
	PromptText string    `json:"prompt_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// View est la représentation JSON d'un post ; image_prompt vaut null s'il n'y en a pas
type View struct {
	ID            uint             `json:"id"`
	User          uint             `json:"user"`
	Username      string           `json:"username"`
	Caption       string           `json:"caption"`
	Hashtags      string           `json:"hashtags"`
	Platform      string           `json:"platform"`
	ScheduledTime *time.Time       `json:"scheduled_time"`
	Status        string           `json:"status"`
	ImagePrompt   *ImagePromptView `json:"image_prompt"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func NewView(p Post) View {
	v := View{
		ID:            p.ID,
		User:          p.UserID,
		Caption:       p.Caption,
		Hashtags:      p.Hashtags,
		Platform:      p.Platform,
		ScheduledTime: p.ScheduledTime,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.User != nil {
		v.Username = p.User.Username
	}
	if p.ImagePrompt != nil {
		v.ImagePrompt = &ImagePromptView{
			ID:         p.ImagePrompt.ID,
			PromptText: p.ImagePrompt.PromptText,
			CreatedAt:  p.ImagePrompt.CreatedAt,
		}
	}
	return v
}

// NewViews renvoie toujours une slice non nil ([] plutôt que null en JSON)
func NewViews(posts []Post) []View {
	views := make([]View, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewView(p))
	}
	return views
}
