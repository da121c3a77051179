package reveal

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed stylesheet.schema.json
var styleSheetSchema []byte

// StyleSheet maps style property names to values. Class rules override the
// defaults; when an element has several classes the later ones win.
type StyleSheet struct {
	Defaults map[string]string            `yaml:"defaults" json:"defaults"`
	Classes  map[string]map[string]string `yaml:"classes" json:"classes"`
}

// DefaultStyleSheet returns the built-in property defaults.
func DefaultStyleSheet() *StyleSheet {
	return &StyleSheet{
		Defaults: map[string]string{
			PropColor:                          "rgb(0, 0, 0)",
			PropOpacity:                        "0.26",
			PropBorderColor:                    "",
			PropBorderWidth:                    "1",
			PropBorderFillRadius:               "1",
			PropBorderDecorationType:           "miter",
			PropBorderDecorationRadius:         "0",
			PropBorderDecorationTopLeftRadius:  "-1",
			PropBorderDecorationTopRightRadius: "-1",
			PropBorderDecorationBottomRight:    "-1",
			PropBorderDecorationBottomLeft:     "-1",
			PropBorderTopType:                  "line",
			PropBorderRightType:                "line",
			PropBorderBottomType:               "line",
			PropBorderLeftType:                 "line",
			PropHoverLight:                     "true",
			PropHoverLightColor:                "",
			PropHoverLightFillRadius:           "1.5",
			PropHoverLightFillRadiusMode:       "relative",
			PropDiffuse:                        "true",
			PropPressAnimation:                 "true",
			PropPressAnimationColor:            "",
			PropPressAnimationRadiusMode:       "constrained",
			PropPressAnimationSpeed:            "2000",
			PropReleaseAnimationAccelerateRate: "6",
		},
		Classes: map[string]map[string]string{},
	}
}

// Lookup returns the value of name for an element with the given classes.
func (s *StyleSheet) Lookup(classes []string, name string) (string, bool) {
	for i := len(classes) - 1; i >= 0; i-- {
		if rule, ok := s.Classes[classes[i]]; ok {
			if v, ok := rule[name]; ok {
				return v, true
			}
		}
	}
	v, ok := s.Defaults[name]
	return v, ok
}

// Resolve merges the defaults and the class rules into one table.
func (s *StyleSheet) Resolve(classes []string) map[string]string {
	out := make(map[string]string, len(s.Defaults))
	for k, v := range s.Defaults {
		out[k] = v
	}
	for _, c := range classes {
		for k, v := range s.Classes[c] {
			out[k] = v
		}
	}
	return out
}

// count returns the number of distinct properties visible to classes.
func (s *StyleSheet) count(classes []string) int {
	n := len(s.Defaults)
	seen := map[string]struct{}{}
	for _, c := range classes {
		for k := range s.Classes[c] {
			if _, ok := s.Defaults[k]; ok {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			n++
		}
	}
	return n
}

// ClassNames returns the sorted class names of the sheet.
func (s *StyleSheet) ClassNames() []string {
	names := make([]string, 0, len(s.Classes))
	for k := range s.Classes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// mergeDefaults fills properties the sheet does not define from the
// built-in defaults.
func (s *StyleSheet) mergeDefaults() {
	if s.Defaults == nil {
		s.Defaults = map[string]string{}
	}
	if s.Classes == nil {
		s.Classes = map[string]map[string]string{}
	}
	for k, v := range DefaultStyleSheet().Defaults {
		if _, ok := s.Defaults[k]; !ok {
			s.Defaults[k] = v
		}
	}
}

// LoadStyleSheetYAML parses a YAML style sheet. Missing defaults are filled
// from DefaultStyleSheet.
func LoadStyleSheetYAML(data []byte) (*StyleSheet, error) {
	var s StyleSheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse style sheet: %w", err)
	}
	s.mergeDefaults()
	return &s, nil
}

// LoadStyleSheetJSON validates a JSON style sheet against the embedded
// schema and parses it. Numbers and booleans are accepted as values.
func LoadStyleSheetJSON(data []byte) (*StyleSheet, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(styleSheetSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate style sheet: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("validate style sheet: %s", strings.Join(msgs, "; "))
	}

	var raw struct {
		Defaults map[string]any            `json:"defaults"`
		Classes  map[string]map[string]any `json:"classes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse style sheet: %w", err)
	}
	s := &StyleSheet{
		Defaults: stringifyRule(raw.Defaults),
		Classes:  make(map[string]map[string]string, len(raw.Classes)),
	}
	for name, rule := range raw.Classes {
		s.Classes[name] = stringifyRule(rule)
	}
	s.mergeDefaults()
	return s, nil
}

// LoadStyleSheetFile loads a style sheet by extension: .json is validated
// JSON, .yaml and .yml are YAML.
func LoadStyleSheetFile(path string) (*StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style sheet: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadStyleSheetJSON(data)
	case ".yaml", ".yml":
		return LoadStyleSheetYAML(data)
	}
	return nil, errors.New("style sheet: unsupported extension " + filepath.Ext(path))
}

func stringifyRule(rule map[string]any) map[string]string {
	out := make(map[string]string, len(rule))
	for k, v := range rule {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		}
	}
	return out
}
