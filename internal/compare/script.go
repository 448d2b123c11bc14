package compare

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	"github.com/alexisbeaulieu97/gittemplate/pkg/diff"
)

// GenerateDiffScript renders cleanup instructions that would turn the target tree into the
// source tree. Each instruction is preceded by a comment naming the relative path.
func GenerateDiffScript(result *model.ComparisonResult) string {
	if result == nil {
		return ""
	}

	lines := make([]string, 0, 2*result.TotalDifferences())
	for _, rel := range result.AddedFiles {
		lines = append(lines,
			"# Add file: "+rel,
			fmt.Sprintf("copy_file %s, %s", quote(sourceFile(result, rel)), quote(rel)))
	}
	for _, rel := range result.ModifiedFiles {
		lines = append(lines,
			"# Modify file: "+rel,
			fmt.Sprintf("copy_file %s, %s, force: true", quote(sourceFile(result, rel)), quote(rel)))
	}
	for _, rel := range result.DeletedFiles {
		lines = append(lines,
			"# Remove file: "+rel,
			fmt.Sprintf("remove_file %s", quote(rel)))
	}
	return strings.Join(lines, "\n")
}

// FileDiff returns a unified diff from the target copy of rel to the source copy.
func FileDiff(result *model.ComparisonResult, rel string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no comparison result")
	}
	source, err := os.ReadFile(sourceFile(result, rel))
	if err != nil {
		return "", fmt.Errorf("read source %s: %w", rel, err)
	}
	target, err := os.ReadFile(filepath.Join(result.TargetPath, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("read target %s: %w", rel, err)
	}
	return diff.GenerateUnifiedDiff(target, source, "generated/"+rel, "application/"+rel), nil
}

func sourceFile(result *model.ComparisonResult, rel string) string {
	return filepath.Join(result.SourcePath, filepath.FromSlash(rel))
}

// quote produces a single-quoted script literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// ScriptOp names one cleanup instruction.
type ScriptOp string

const (
	OpCopyFile   ScriptOp = "copy_file"
	OpRemoveFile ScriptOp = "remove_file"
)

// Instruction is one parsed copy_file or remove_file line.
type Instruction struct {
	Op ScriptOp
	// Source is the file copied from; empty for remove_file.
	Source string
	// Target is slash-separated and relative to the folder the script runs in.
	Target string
	Force  bool
	Line   int
}

// ParseDiffScript reads back the instructions GenerateDiffScript writes. Comments and any
// other statements a cleanup phase may contain are skipped.
func ParseDiffScript(script string) []Instruction {
	var out []Instruction
	for i, raw := range strings.Split(script, "\n") {
		op, rest, ok := strings.Cut(strings.TrimSpace(raw), " ")
		if !ok {
			continue
		}
		args, force, ok := scriptArgs(rest)
		if !ok {
			continue
		}

		switch ScriptOp(op) {
		case OpCopyFile:
			if len(args) == 2 {
				out = append(out, Instruction{Op: OpCopyFile, Source: args[0], Target: args[1], Force: force, Line: i + 1})
			}
		case OpRemoveFile:
			if len(args) == 1 && !force {
				out = append(out, Instruction{Op: OpRemoveFile, Target: args[0], Line: i + 1})
			}
		}
	}
	return out
}

// scriptArgs splits comma-separated quoted literals with an optional trailing "force: true".
func scriptArgs(s string) ([]string, bool, bool) {
	var args []string
	for {
		s = strings.TrimLeft(s, " ")
		if len(args) > 0 && strings.TrimSpace(s) == "force: true" {
			return args, true, true
		}

		lit, rest, ok := unquote(s)
		if !ok {
			return nil, false, false
		}
		args = append(args, lit)

		rest = strings.TrimSpace(rest)
		if rest == "" {
			return args, false, true
		}
		next, found := strings.CutPrefix(rest, ",")
		if !found {
			return nil, false, false
		}
		s = next
	}
}

// unquote reads one literal written by quote from the start of s and returns the remainder.
func unquote(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "'") {
		return "", "", false
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '\'') {
				i++
			}
			b.WriteByte(s[i])
		case '\'':
			return b.String(), s[i+1:], true
		default:
			b.WriteByte(c)
		}
	}
	return "", "", false
}
