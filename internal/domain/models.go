package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all database models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the primary key so the same models work against
// Postgres and the sqlite databases used in tests.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Theme is a user's UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// IsValid checks if the theme is a known value.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email        string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `gorm:"size:100" json:"fullName"`
	ProfileImage string `gorm:"size:512" json:"profileImage"`
	Theme        Theme  `gorm:"size:10;default:'system'" json:"theme"`

	Contents []Content `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// ContentType identifies the transformation applied to a piece of content.
type ContentType string

const (
	ContentTypeExpand    ContentType = "expand"
	ContentTypeSummarize ContentType = "summarize"
	ContentTypeSimilar   ContentType = "similar"
	ContentTypeTemplate  ContentType = "template"
)

// IsValid checks if the content type is a known value.
func (ct ContentType) IsValid() bool {
	switch ct {
	case ContentTypeExpand, ContentTypeSummarize, ContentTypeSimilar, ContentTypeTemplate:
		return true
	}
	return false
}

// ContentMetadata holds per-type auxiliary data stored as jsonb.
type ContentMetadata map[string]any

// Value implements driver.Valuer.
func (m ContentMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *ContentMetadata) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", value)
	}
	return json.Unmarshal(raw, m)
}

// baseMetadataKeys are the generation options every transformation can carry.
var baseMetadataKeys = []string{
	"tone", "audience", "temperature", "topP", "topK", "maxOutputTokens",
}

// metadataKeys lists the allowed metadata keys per content type.
var metadataKeys = map[ContentType]map[string]bool{
	ContentTypeExpand:    allowKeys(),
	ContentTypeSummarize: allowKeys(),
	ContentTypeSimilar:   allowKeys(),
	ContentTypeTemplate:  allowKeys("templateName", "placeholders"),
}

func allowKeys(extra ...string) map[string]bool {
	keys := make(map[string]bool, len(baseMetadataKeys)+len(extra))
	for _, k := range baseMetadataKeys {
		keys[k] = true
	}
	for _, k := range extra {
		keys[k] = true
	}
	return keys
}

// ValidateFor reports whether the metadata only uses keys recognized for
// the given content type. Nil metadata is always valid.
func (m ContentMetadata) ValidateFor(ct ContentType) error {
	if m == nil {
		return nil
	}
	allowed, ok := metadataKeys[ct]
	if !ok {
		return fmt.Errorf("unknown content type %q", ct)
	}
	for key := range m {
		if !allowed[key] {
			return fmt.Errorf("metadata key %q is not valid for content type %q", key, ct)
		}
	}
	return nil
}

// AIParameters tunes the generation model. All fields are optional;
// unset fields fall back to provider defaults.
type AIParameters struct {
	Temperature     *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=1"`
	TopP            *float64 `json:"topP,omitempty" validate:"omitempty,gte=0,lte=1"`
	TopK            *int     `json:"topK,omitempty" validate:"omitempty,gte=1,lte=100"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty" validate:"omitempty,gte=50,lte=8192"`
}

// Content is a saved transformation result owned by a user.
type Content struct {
	BaseModel
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	Title                string          `gorm:"not null;size:255" json:"title"`
	OriginalContent      string          `gorm:"type:text;not null" json:"originalContent"`
	TransformedContent   string          `gorm:"type:text;not null" json:"transformedContent"`
	ContentType          ContentType     `gorm:"not null;size:20;index" json:"contentType"`
	OriginalWordCount    int             `gorm:"not null;default:0" json:"originalWordCount"`
	TransformedWordCount int             `gorm:"not null;default:0" json:"transformedWordCount"`
	Metadata             ContentMetadata `gorm:"type:jsonb" json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Content.
func (Content) TableName() string {
	return "contents"
}
