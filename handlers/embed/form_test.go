package embed

import (
	"testing"
	"time"

	"community-bot/handlers/router"
	"community-bot/model"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)

func TestParseForm(t *testing.T) {
	d, err := parseForm(map[string]string{
		fieldTitle:  " Rules ",
		fieldColor:  "#fff",
		fieldFooter: "Read them",
		fieldImage:  "https://example.com/banner.png",
	}, "#5865F2", now)
	require.NoError(t, err)
	assert.Equal(t, model.EmbedData{
		Title:     "Rules",
		Color:     "#fff",
		Footer:    &model.EmbedFooter{Text: "Read them"},
		Image:     &model.EmbedImage{URL: "https://example.com/banner.png"},
		Timestamp: "2024-03-04T05:06:07Z",
	}, d)

	d, err = parseForm(map[string]string{fieldDescription: "body"}, "#5865F2", now)
	require.NoError(t, err)
	assert.Equal(t, "#5865F2", d.Color)
	assert.Nil(t, d.Footer)
	assert.Nil(t, d.Image)
}

func TestParseFormRejects(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		code   string
	}{
		{"no content", map[string]string{fieldColor: "#fff", fieldFooter: "x"}, "missing_content"},
		{"blank content", map[string]string{fieldTitle: "   "}, "missing_content"},
		{"bad colour", map[string]string{fieldTitle: "t", fieldColor: "blue"}, "invalid_color"},
		{"short hex", map[string]string{fieldTitle: "t", fieldColor: "#ff"}, "invalid_color"},
		{"ftp image", map[string]string{fieldTitle: "t", fieldImage: "ftp://example.com/a.png"}, "invalid_image"},
		{"no host", map[string]string{fieldTitle: "t", fieldImage: "https://localhost"}, "invalid_image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseForm(tt.values, "#5865F2", now)
			require.Error(t, err)
			de := utils.AsDomainError(err)
			assert.Equal(t, utils.KindValidation, de.Kind)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestValidTemplateName(t *testing.T) {
	name, err := validTemplateName("  Welcome v2 ")
	require.NoError(t, err)
	assert.Equal(t, "Welcome v2", name)

	for _, bad := range []string{"", "with_underscore", "-leading", "this-name-is-far-too-long-for-a-template"} {
		_, err := validTemplateName(bad)
		assert.True(t, utils.HasCode(err, "invalid_template_name"), bad)
	}
}

func TestTemplateRowRoutes(t *testing.T) {
	row := templateRow("Welcome v2")
	use := row.Components[0].(discordgo.Button).CustomID
	del := row.Components[1].(discordgo.Button).CustomID

	id, ok := router.Parse(use)
	require.True(t, ok)
	assert.Equal(t, router.ID{Domain: "embed", Action: "template", Args: []string{"use", "Welcome v2"}}, id)

	id, ok = router.Parse(del)
	require.True(t, ok)
	assert.Equal(t, []string{"delete", "Welcome v2"}, id.Args)
}

func TestFormRowsPrefill(t *testing.T) {
	rows := formRows(model.EmbedData{
		Title:  "Hello",
		Footer: &model.EmbedFooter{Text: "foot"},
	}, "#5865F2")
	require.Len(t, rows, 5)

	input := func(n int) discordgo.TextInput {
		return rows[n].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	}
	assert.Equal(t, "Hello", input(0).Value)
	assert.Equal(t, "#5865F2", input(2).Value)
	assert.Equal(t, "foot", input(3).Value)
	assert.Equal(t, "", input(4).Value)
}

func TestTemplateSelectRowCapsOptions(t *testing.T) {
	var templates []*model.EmbedTemplate
	for n := 0; n < 30; n++ {
		templates = append(templates, &model.EmbedTemplate{Name: string(rune('a' + n%26))})
	}
	menu := templateSelectRow(templates).Components[0].(discordgo.SelectMenu)
	assert.Len(t, menu.Options, 25)
}
