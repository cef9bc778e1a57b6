package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/mapper"
	"github.com/stretchr/testify/assert"
)

func TestToUserDTO(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	user := &domain.User{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: created,
		},
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "secret-hash",
		FullName:     "Alice Writer",
		ProfileImage: "ab/cd/abcd.png",
		Theme:        domain.ThemeDark,
	}

	dto := mapper.ToUserDTO(user)

	assert.Equal(t, user.ID.String(), dto.ID)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, "alice@example.com", dto.Email)
	assert.Equal(t, "Alice Writer", dto.FullName)
	assert.Equal(t, "ab/cd/abcd.png", dto.ProfileImage)
	assert.Equal(t, domain.ThemeDark, dto.Theme)
	assert.Equal(t, "2025-03-14T09:26:53Z", dto.CreatedAt)
}

func TestToContentDTO(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	content := &domain.Content{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:               uuid.New(),
		Title:                "Notes",
		OriginalContent:      "in",
		TransformedContent:   "out out",
		ContentType:          domain.ContentTypeSummarize,
		OriginalWordCount:    1,
		TransformedWordCount: 2,
		Metadata:             domain.ContentMetadata{"tone": "casual"},
	}

	dto := mapper.ToContentDTO(content)

	assert.Equal(t, content.ID.String(), dto.ID)
	assert.Equal(t, content.UserID.String(), dto.UserID)
	assert.Equal(t, domain.ContentTypeSummarize, dto.ContentType)
	assert.Equal(t, 1, dto.OriginalWordCount)
	assert.Equal(t, 2, dto.TransformedWordCount)
	assert.Equal(t, "casual", dto.Metadata["tone"])
	assert.Equal(t, "2025-06-01T12:00:00Z", dto.CreatedAt)
}

func TestToContentDTOs(t *testing.T) {
	contents := []domain.Content{
		{BaseModel: domain.BaseModel{ID: uuid.New()}, ContentType: domain.ContentTypeExpand},
		{BaseModel: domain.BaseModel{ID: uuid.New()}, ContentType: domain.ContentTypeSimilar},
	}

	dtos := mapper.ToContentDTOs(contents)

	assert.Len(t, dtos, 2)
	assert.Equal(t, contents[0].ID.String(), dtos[0].ID)
	assert.Equal(t, contents[1].ID.String(), dtos[1].ID)

	assert.Empty(t, mapper.ToContentDTOs(nil))
}
