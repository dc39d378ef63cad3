package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jqs7/regex/pkg/app"
	"github.com/jqs7/regex/pkg/lock"
	"github.com/jqs7/regex/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

func wordType(a *app.App, s string) (model.WordType, error) {
	t := model.WordType(strings.ToLower(s))
	if !t.Valid() || !a.Config.Enabled(t) {
		return "", xerrors.Errorf("未知类别: %s", s)
	}
	return t, nil
}

// readPatterns reads a YAML list, or one pattern per line for any other file.
func readPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("读取 %s 失败: %w", path, err)
	}
	defer f.Close()

	var patterns []string
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.NewDecoder(f).Decode(&patterns); err != nil {
			return nil, xerrors.Errorf("解码 %s 失败: %w", path, err)
		}
		return patterns, nil
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			patterns = append(patterns, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("读取 %s 失败: %w", path, err)
	}
	return patterns, nil
}

// importPatterns writes patterns under the regex lock the bot's commands use.
func importPatterns(ctx context.Context, a *app.App, t model.WordType, patterns []string) (int, error) {
	release, err := a.Lock.Lock(ctx, lock.Regex)
	if err != nil {
		return 0, xerrors.Errorf("获取锁失败: %w", err)
	}
	defer release()
	return a.Words.Import(ctx, t, patterns, 0)
}

var importCmd = &cobra.Command{
	Use:   "import <type> <file>",
	Short: "Add the patterns of file to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(app.Options{NoBot: true})
		if err != nil {
			return err
		}
		t, err := wordType(a, args[0])
		if err != nil {
			return err
		}
		patterns, err := readPatterns(args[1])
		if err != nil {
			return err
		}
		added, err := importPatterns(cmd.Context(), a, t, patterns)
		if err != nil {
			return err
		}
		a.Logger.Info("imported", zap.String("type", string(t)), zap.Int("read", len(patterns)), zap.Int("added", added))
		if added > 0 {
			return a.Sharer.Update(cmd.Context(), t)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <type>",
	Short: "Print the patterns of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(app.Options{NoBot: true})
		if err != nil {
			return err
		}
		t, err := wordType(a, args[0])
		if err != nil {
			return err
		}
		patterns, err := a.Words.Patterns(cmd.Context(), t)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			return yaml.NewEncoder(out).Encode(patterns)
		}
		for _, p := range patterns {
			fmt.Fprintln(out, p)
		}
		return nil
	},
}
