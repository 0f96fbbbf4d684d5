// internal/template/model_test.go
//
// Structure decoding and tree-walk tests.
//
// Run: go test ./internal/template -v

package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sideBySideJSON = `{
	"template_type": "side-by-side",
	"settings": {
		"backgroundColor": "#ffffff",
		"textColor": "#1f2937",
		"buttonColor": "#4f46e5",
		"buttonTextColor": "#ffffff",
		"accentColor": "#8b5cf6"
	},
	"components": [
		{
			"type": "layout",
			"variant": "side-by-side",
			"children": [
				{"type": "image", "position": "left", "src": "/img/x.svg", "alt": "x"},
				{
					"type": "content",
					"position": "right",
					"children": [
						{"type": "header", "level": 1, "content": "Join our exclusive waitlist"},
						{"type": "text", "content": "Be among the first."},
						{
							"type": "form",
							"fields": [
								{"type": "email", "name": "email", "required": true}
							],
							"button": {"text": "Join the waitlist"},
							"success_message": "Thanks!"
						}
					]
				}
			]
		}
	]
}`

func TestStructureDecode(t *testing.T) {
	var s Structure
	require.NoError(t, json.Unmarshal([]byte(sideBySideJSON), &s))

	assert.Equal(t, "side-by-side", s.TemplateType)
	assert.Equal(t, "#1f2937", s.Settings.TextColor)
	require.Len(t, s.Components, 1)

	layout := s.Components[0]
	assert.Equal(t, TypeLayout, layout.Type)
	require.Len(t, layout.Children, 2)

	form := layout.Children[1].Children[2]
	assert.Equal(t, TypeForm, form.Type)
	require.NotNil(t, form.Button)
	assert.Equal(t, "Join the waitlist", form.Button.Text)
	require.Len(t, form.Fields, 1)
	assert.True(t, form.Fields[0].Required)
}

func TestStructureDecodeRejectsUnknownType(t *testing.T) {
	var s Structure
	err := json.Unmarshal([]byte(`{"components":[{"type":"carousel"}]}`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown component type "carousel"`)
}

func TestStructureDecodeRejectsNestedUnknownType(t *testing.T) {
	var s Structure
	err := json.Unmarshal([]byte(
		`{"components":[{"type":"layout","children":[{"type":"widget"}]}]}`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown component type "widget"`)
}

func TestTreeWalks(t *testing.T) {
	var s Structure
	require.NoError(t, json.Unmarshal([]byte(sideBySideJSON), &s))

	// Walks find the first match depth-first, through nested layouts.
	assert.Equal(t, "Join our exclusive waitlist", s.FirstHeader())
	assert.Equal(t, "Be among the first.", s.FirstText())
	assert.Equal(t, "Join the waitlist", s.ButtonText())
}

func TestTreeWalksEmpty(t *testing.T) {
	var s Structure
	assert.Equal(t, "", s.FirstHeader())
	assert.Equal(t, "", s.FirstText())
	assert.Equal(t, "", s.ButtonText())
}

func TestStructureScanNull(t *testing.T) {
	var s Structure
	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s.Components)
}
