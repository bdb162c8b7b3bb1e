package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/iancoleman/strcase"

	"github.com/vcrobe/rtc/compiler"
)

// configFile is looked up in the working directory and the home directory.
const configFile = ".rtrc.yaml"

// loadConfig is a kong.ConfigurationLoader for YAML files mapping flag
// names to values:
//
//	modules: commonjs
//	target-version: 0.14.0
//	normalizeHtmlWhitespace: true
//	prop-templates:
//	  List:
//	    Item: {prop: renderItem, arguments: [item]}
//
// Keys may be spelled as the flag or in lower camel case. Flags given on
// the command line win.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	values := yamlConfig{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return values, nil
}

// yamlConfig implements kong.Resolver over a decoded YAML document.
type yamlConfig map[string]any

func (yamlConfig) Validate(*kong.Application) error { return nil }

func (c yamlConfig) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, key := range []string{flag.Name, strcase.ToLowerCamel(flag.Name)} {
		value, ok := c[key]
		if !ok {
			continue
		}
		// kong parses numbers from strings
		switch v := value.(type) {
		case int64:
			return strconv.FormatInt(v, 10), nil
		case uint64:
			return strconv.FormatUint(v, 10), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
		return value, nil
	}
	return nil, nil
}

// propTemplates is the --prop-templates flag. It accepts a YAML or JSON
// document on the command line and a mapping in the config file.
type propTemplates map[string]map[string]compiler.PropTemplate

func (p *propTemplates) Decode(ctx *kong.DecodeContext) error {
	tok, err := ctx.Scan.PopValue("prop templates")
	if err != nil {
		return err
	}
	var data []byte
	switch v := tok.Value.(type) {
	case string:
		data = []byte(v)
	default:
		if data, err = yaml.Marshal(v); err != nil {
			return fmt.Errorf("prop templates: %w", err)
		}
	}
	var out map[string]map[string]compiler.PropTemplate
	if err := yaml.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("prop templates: %w", err)
	}
	*p = out
	return nil
}
