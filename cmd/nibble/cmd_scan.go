package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/dhamidi/nibble/ascii"
	"github.com/dhamidi/nibble/parse"
	"github.com/dhamidi/nibble/stream"
)

type scanRule struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class,omitempty"`
	Chars string `yaml:"chars,omitempty"`
}

type scanConfig struct {
	Rules []scanRule `yaml:"rules"`
}

func newScanCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:           "scan --rules <rules.yaml> [file]",
		Short:         "Tokenize input by configured character classes and count tokens",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScanConfig(rulesPath)
			if err != nil {
				return err
			}

			token, err := cfg.tokenParser()
			if err != nil {
				return err
			}

			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			st := stream.New(in)
			counts := map[string]int{}
			for {
				end, err := stream.Run(st, parse.Parser[bool](parse.AtEnd))
				if err != nil {
					return fmt.Errorf("scan: %w", err)
				}
				if end {
					break
				}
				name, err := stream.Run(st, token)
				if err != nil {
					return fmt.Errorf("scan: %w", err)
				}
				counts[name]++
			}

			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s\t%d\n", name, counts[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file defining token classes")
	cmd.MarkFlagRequired("rules")

	return cmd
}

func loadScanConfig(path string) (*scanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var cfg scanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}
	return &cfg, nil
}

// tokenParser builds an ordered choice over the configured rules; earlier
// rules win. Bytes matching no rule count as "other".
func (cfg *scanConfig) tokenParser() (parse.Parser[string], error) {
	token := parse.Map(parse.Parser[byte](parse.Any), func(byte) string { return "other" })
	for idx := len(cfg.Rules) - 1; idx >= 0; idx-- {
		rule := cfg.Rules[idx]
		pred, err := rule.predicate()
		if err != nil {
			return nil, err
		}
		name := rule.Name
		token = parse.Or(
			parse.Map(parse.TakeWhile1(pred), func([]byte) string { return name }),
			token)
	}
	return token, nil
}

func (r scanRule) predicate() (func(byte) bool, error) {
	switch r.Class {
	case "digit":
		return ascii.IsDigit, nil
	case "alpha":
		return ascii.IsAlpha, nil
	case "alnum":
		return ascii.IsAlphanumeric, nil
	case "space":
		return ascii.IsWhitespace, nil
	case "":
		if r.Chars == "" {
			return nil, fmt.Errorf("rule %q: class or chars required", r.Name)
		}
		set := []byte(r.Chars)
		return func(c byte) bool { return bytes.IndexByte(set, c) >= 0 }, nil
	default:
		return nil, fmt.Errorf("rule %q: unknown class %q", r.Name, r.Class)
	}
}
