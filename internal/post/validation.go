package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/validation"
)

const (
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
)

const (
	StatusDraft       = "draft"
	StatusScheduled   = "scheduled"
	StatusReadyToPost = "ready_to_post"
	StatusPosted      = "posted"
)

var (
	Platforms = []string{PlatformInstagram, PlatformLinkedIn, PlatformTwitter}
	Statuses  = []string{StatusDraft, StatusScheduled, StatusReadyToPost, StatusPosted}
)

const (
	msgRequired   = "This field is required."
	msgBlank      = "This field may not be blank."
	msgNull       = "This field may not be null."
	msgNotString  = "Not a valid string."
	msgBadDate    = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
	msgBadPayload = "Invalid data. Expected a dictionary."
)

var scheduledTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// IsPlatform et IsStatus comparent à l'identique (filtres d'URL)
func IsPlatform(v string) bool { return contains(Platforms, v) }

func IsStatus(v string) bool { return contains(Statuses, v) }

// NormalizePlatform accepte n'importe quelle casse et renvoie la valeur en minuscules
func NormalizePlatform(v string) (string, bool) {
	v = strings.ToLower(v)
	return v, IsPlatform(v)
}

func NormalizeStatus(v string) (string, bool) {
	v = strings.ToLower(v)
	return v, IsStatus(v)
}

func contains(values []string, v string) bool {
	for _, allowed := range values {
		if allowed == v {
			return true
		}
	}
	return false
}

// input est le résultat du décodage d'un corps JSON de post.
// Un champ nil n'a pas été fourni.
type input struct {
	Caption          *string
	Hashtags         *string
	Platform         *string
	Status           *string
	ScheduledTimeSet bool
	ScheduledTime    *time.Time
	ImagePromptText  *string
}

// parseInput valide les champs fournis. Les champs en lecture seule (id,
// user, username, image_prompt, dates) et inconnus sont ignorés.
func parseInput(raw map[string]interface{}, errs validation.Errors) input {
	var in input

	in.Caption = stringField(raw, "caption", false, errs)
	in.Hashtags = stringField(raw, "hashtags", true, errs)
	in.ImagePromptText = stringField(raw, "image_prompt_text", true, errs)

	if p := stringField(raw, "platform", false, errs); p != nil {
		if v, ok := NormalizePlatform(*p); ok {
			in.Platform = &v
		} else {
			errs.Add("platform", validation.OneOf("Platform", Platforms))
		}
	}

	if s := stringField(raw, "status", false, errs); s != nil {
		if v, ok := NormalizeStatus(*s); ok {
			in.Status = &v
		} else {
			errs.Add("status", validation.OneOf("Status", Statuses))
		}
	}

	if value, ok := raw["scheduled_time"]; ok {
		in.ScheduledTimeSet = true
		switch v := value.(type) {
		case nil:
		case string:
			if t, err := parseScheduledTime(v); err == nil {
				in.ScheduledTime = &t
			} else {
				errs.Add("scheduled_time", msgBadDate)
			}
		default:
			errs.Add("scheduled_time", msgBadDate)
		}
	}

	return in
}

// stringField lit un champ texte ; les espaces en bordure sont retirés
func stringField(raw map[string]interface{}, field string, allowBlank bool, errs validation.Errors) *string {
	value, ok := raw[field]
	if !ok {
		return nil
	}

	var s string
	switch v := value.(type) {
	case nil:
		errs.Add(field, msgNull)
		return nil
	case string:
		s = v
	case float64:
		s = fmt.Sprint(v)
	default:
		errs.Add(field, msgNotString)
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" && !allowBlank {
		errs.Add(field, msgBlank)
		return nil
	}
	return &s
}

func parseScheduledTime(v string) (time.Time, error) {
	var lastErr error
	for _, layout := range scheduledTimeLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(v))
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// validateCreate ajoute les règles propres à la création
func validateCreate(in *input, errs validation.Errors) {
	if in.Caption == nil && len(errs["caption"]) == 0 {
		errs.Add("caption", msgRequired)
	}
	if in.Platform == nil && len(errs["platform"]) == 0 {
		errs.Add("platform", msgRequired)
	}
	if in.Status == nil && len(errs["status"]) == 0 {
		draft := StatusDraft
		in.Status = &draft
	}
	if in.Hashtags == nil {
		empty := ""
		in.Hashtags = &empty
	}
}
