package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astegaru/linkedin-responder/classify"
	"github.com/astegaru/linkedin-responder/config"
)

func TestDefaultsCoverEveryCategory(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)

	for _, cat := range classify.Categories {
		text, err := store.Render(cat, nil)
		require.NoError(t, err, "category %s", cat)
		assert.NotEmpty(t, text, "category %s", cat)
	}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)

	text, err := store.Render(classify.CategoryJobOffer, map[string]string{"name": "Dana"})
	require.NoError(t, err)
	assert.Contains(t, text, "Dana")
	assert.NotContains(t, text, "{name}")
}

func TestRenderLeavesUnknownPlaceholdersLiteral(t *testing.T) {
	got := RenderContent("Hi {name}, about the {role} role at {company}.",
		map[string]string{"name": "Sam"})

	assert.Equal(t, "Hi Sam, about the {role} role at {company}.", got)
}

func TestRenderRoundRobinRotation(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)

	variants := store.Variants(classify.CategoryJobOffer)
	require.GreaterOrEqual(t, len(variants), 2)

	var seen []string
	for i := 0; i < len(variants)*2; i++ {
		text, err := store.Render(classify.CategoryJobOffer, nil)
		require.NoError(t, err)
		seen = append(seen, text)
	}

	// Deterministic rotation: the sequence repeats after a full pass.
	for i := 0; i < len(variants); i++ {
		assert.Equal(t, seen[i], seen[i+len(variants)])
	}
	assert.NotEqual(t, seen[0], seen[1])
}

func TestLoadFromFile(t *testing.T) {
	path := writeTemplates(t, `{
		"job_offer": ["Thanks {name}, tell me more about the role."],
		"recruiter_intro": ["Thanks for connecting, {name}."],
		"follow_up": ["Thanks for the update, {name}."],
		"not_interested": ["Not a fit right now, thanks {name}."],
		"other": ["Could you share more context, {name}?"]
	}`)

	store, err := Load(path)
	require.NoError(t, err)

	text, err := store.Render(classify.CategoryRecruiterIntro, map[string]string{"name": "Alex"})
	require.NoError(t, err)
	assert.Equal(t, "Thanks for connecting, Alex.", text)
}

func TestLoadMalformedFileIsConfigError(t *testing.T) {
	path := writeTemplates(t, `{"job_offer": [`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, config.IsError(err))
}

func TestLoadMissingCategoryIsConfigError(t *testing.T) {
	path := writeTemplates(t, `{
		"job_offer": ["Thanks."],
		"recruiter_intro": ["Thanks."],
		"follow_up": ["Thanks."],
		"not_interested": ["Thanks."]
	}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, config.IsError(err))
	assert.Contains(t, err.Error(), "other")
}

func TestLoadUnknownCategoryIsConfigError(t *testing.T) {
	path := writeTemplates(t, `{"spam": ["Nope."]}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, config.IsError(err))
}

func TestLoadMissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, config.IsError(err))
}

func TestReloadKeepsPreviousSetOnError(t *testing.T) {
	path := writeTemplates(t, `{
		"job_offer": ["v1 {name}"],
		"recruiter_intro": ["v1"],
		"follow_up": ["v1"],
		"not_interested": ["v1"],
		"other": ["v1"]
	}`)

	store, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	assert.Error(t, store.Reload())

	text, err := store.Render(classify.CategoryOther, nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", text)
}

func TestReloadPicksUpChanges(t *testing.T) {
	path := writeTemplates(t, `{
		"job_offer": ["old"],
		"recruiter_intro": ["old"],
		"follow_up": ["old"],
		"not_interested": ["old"],
		"other": ["old"]
	}`)

	store, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{
		"job_offer": ["new"],
		"recruiter_intro": ["new"],
		"follow_up": ["new"],
		"not_interested": ["new"],
		"other": ["new"]
	}`), 0644))
	require.NoError(t, store.Reload())

	text, err := store.Render(classify.CategoryJobOffer, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", text)
}

func TestExtractVariables(t *testing.T) {
	vars := ExtractVariables("Hi {name}, the {role} at {name}.")
	assert.Equal(t, []string{"{name}", "{role}"}, vars)
}

func writeTemplates(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
