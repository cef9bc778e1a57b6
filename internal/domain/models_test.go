package domain_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentType_IsValid(t *testing.T) {
	valid := []domain.ContentType{
		domain.ContentTypeExpand,
		domain.ContentTypeSummarize,
		domain.ContentTypeSimilar,
		domain.ContentTypeTemplate,
	}
	for _, ct := range valid {
		assert.True(t, ct.IsValid(), "expected %q to be valid", ct)
	}

	invalid := []domain.ContentType{"", "translate", "Expand", "EXPAND", "summarise"}
	for _, ct := range invalid {
		assert.False(t, ct.IsValid(), "expected %q to be invalid", ct)
	}
}

func TestTheme_IsValid(t *testing.T) {
	assert.True(t, domain.ThemeLight.IsValid())
	assert.True(t, domain.ThemeDark.IsValid())
	assert.True(t, domain.ThemeSystem.IsValid())

	assert.False(t, domain.Theme("").IsValid())
	assert.False(t, domain.Theme("neon").IsValid())
	assert.False(t, domain.Theme("Dark").IsValid())
}

func TestContentMetadata_ValidateFor(t *testing.T) {
	t.Run("nil metadata is always valid", func(t *testing.T) {
		var m domain.ContentMetadata
		assert.NoError(t, m.ValidateFor(domain.ContentTypeExpand))
	})

	t.Run("empty metadata is valid", func(t *testing.T) {
		m := domain.ContentMetadata{}
		assert.NoError(t, m.ValidateFor(domain.ContentTypeTemplate))
	})

	t.Run("allowed keys per type", func(t *testing.T) {
		cases := []struct {
			ct   domain.ContentType
			meta domain.ContentMetadata
		}{
			{domain.ContentTypeExpand, domain.ContentMetadata{"tone": "formal", "maxOutputTokens": 2048}},
			{domain.ContentTypeSummarize, domain.ContentMetadata{"audience": "executives", "temperature": 0.4}},
			{domain.ContentTypeSimilar, domain.ContentMetadata{"tone": "casual", "topP": 0.9, "topK": 40}},
			{domain.ContentTypeTemplate, domain.ContentMetadata{"templateName": "email", "placeholders": []string{"name"}, "tone": "formal"}},
		}
		for _, tc := range cases {
			assert.NoError(t, tc.meta.ValidateFor(tc.ct), "content type %q", tc.ct)
		}
	})

	t.Run("template-only key is rejected for other types", func(t *testing.T) {
		m := domain.ContentMetadata{"templateName": "email"}
		err := m.ValidateFor(domain.ContentTypeExpand)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "templateName")
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		m := domain.ContentMetadata{"mood": "upbeat"}
		assert.Error(t, m.ValidateFor(domain.ContentTypeSummarize))
	})

	t.Run("unknown content type is rejected", func(t *testing.T) {
		m := domain.ContentMetadata{"tone": "formal"}
		assert.Error(t, m.ValidateFor(domain.ContentType("translate")))
	})
}

func TestContentMetadata_ValueScanRoundtrip(t *testing.T) {
	original := domain.ContentMetadata{
		"tone":     "formal",
		"audience": "students",
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned domain.ContentMetadata
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, "formal", scanned["tone"])
	assert.Equal(t, "students", scanned["audience"])

	t.Run("nil value round-trips to nil", func(t *testing.T) {
		var m domain.ContentMetadata
		value, err := m.Value()
		require.NoError(t, err)
		assert.Nil(t, value)

		var scanned domain.ContentMetadata
		require.NoError(t, scanned.Scan(nil))
		assert.Nil(t, scanned)
	})

	t.Run("scan accepts string input", func(t *testing.T) {
		var scanned domain.ContentMetadata
		require.NoError(t, scanned.Scan(`{"tone":"formal"}`))
		assert.Equal(t, "formal", scanned["tone"])
	})

	t.Run("scan rejects unsupported types", func(t *testing.T) {
		var scanned domain.ContentMetadata
		assert.Error(t, scanned.Scan(42))
	})
}

func TestAIParameters_Validation(t *testing.T) {
	v := validator.New()

	ptrF := func(f float64) *float64 { return &f }
	ptrI := func(i int) *int { return &i }

	t.Run("empty parameters are valid", func(t *testing.T) {
		assert.NoError(t, v.Struct(&domain.AIParameters{}))
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		params := &domain.AIParameters{
			Temperature:     ptrF(1.0),
			TopP:            ptrF(1.0),
			TopK:            ptrI(100),
			MaxOutputTokens: ptrI(50),
		}
		assert.NoError(t, v.Struct(params))
	})

	t.Run("values beyond bounds rejected", func(t *testing.T) {
		cases := []domain.AIParameters{
			{Temperature: ptrF(1.01)},
			{Temperature: ptrF(-0.1)},
			{TopP: ptrF(1.5)},
			{TopK: ptrI(0)},
			{TopK: ptrI(101)},
			{MaxOutputTokens: ptrI(49)},
			{MaxOutputTokens: ptrI(8193)},
		}
		for i, params := range cases {
			assert.Error(t, v.Struct(&params), "case %d", i)
		}
	})
}
