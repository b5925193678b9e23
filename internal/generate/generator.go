// Package generate turns a saved page into a React Native project
// tree: per-kind source fragments concatenated in position order into
// App.js, wrapped in a fixed scaffold.
package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
	"github.com/appcanvas-dev/appcanvas/internal/page"
)

// Meta is the app metadata expanded into the scaffold.
type Meta struct {
	AppName string
	AppKey  string
}

// Generator writes project trees. The clock is injectable so tests can
// pin the embedded generation timestamp.
type Generator struct {
	log *logrus.Logger
	now func() time.Time
}

// New creates a Generator.
func New(log *logrus.Logger) *Generator {
	return &Generator{log: log, now: time.Now}
}

// Generate writes the project tree for a page into outDir. The
// directory itself is created, but its parent must already exist. An
// empty page still yields a complete, runnable scaffold. Output is
// byte-identical across runs for the same page except the embedded
// generation timestamp.
func (g *Generator) Generate(p *page.Page, meta Meta, outDir string) error {
	parent := filepath.Dir(outDir)
	if _, err := os.Stat(parent); err != nil {
		return errors.New(errors.CodeGenerationAborted).
			WithDetail(fmt.Sprintf("output parent directory %q does not exist", parent)).
			WithSuggestion("Create the parent directory first, or pass a different --out path.").
			Wrap(err)
	}

	components, err := g.renderComponents(p)
	if err != nil {
		return err
	}

	data := map[string]string{
		"AppNameJS":   jsString(meta.AppName),
		"AppSlugJS":   jsString(slugify(meta.AppName)),
		"AppKeyJS":    jsString(meta.AppKey),
		"GeneratedAt": g.now().UTC().Format(time.RFC3339),
		"Components":  components,
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.New(errors.CodeGenerationAborted).Wrap(err)
	}

	// Deterministic write order keeps failures reproducible.
	paths := make([]string, 0, len(skeleton))
	for relPath := range skeleton {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		if err := g.writeScaffoldFile(outDir, relPath, skeleton[relPath], data); err != nil {
			return err
		}
	}

	g.log.WithFields(logrus.Fields{
		"app":        meta.AppKey,
		"page":       p.ID,
		"components": len(p.Instances),
		"out":        outDir,
	}).Info("project tree generated")
	return nil
}

// renderComponents expands every instance's fragment in position order
// and indents the result for the App.js body.
func (g *Generator) renderComponents(p *page.Page) (string, error) {
	instances := make([]*page.Instance, len(p.Instances))
	copy(instances, p.Instances)
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Position < instances[j].Position
	})

	var buf strings.Builder
	for _, inst := range instances {
		frag, err := Fragment(inst.KindID, inst.Params)
		if err != nil {
			return "", err
		}
		if !HasFragment(inst.KindID) {
			g.log.WithField("kind", inst.KindID).Warn("no fragment for kind, emitting empty container")
		}
		buf.WriteString(indent(frag, "      "))
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

func (g *Generator) writeScaffoldFile(outDir, relPath, src string, data map[string]string) error {
	tmpl, err := template.New(relPath).Delims("[[", "]]").Parse(src)
	if err != nil {
		return errors.New(errors.CodeMissingSkeleton).
			WithDetail(fmt.Sprintf("scaffold %q failed to parse: %v", relPath, err)).
			Wrap(err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return errors.New(errors.CodeMissingSkeleton).
			WithDetail(fmt.Sprintf("scaffold %q failed to execute: %v", relPath, err)).
			Wrap(err)
	}

	fullPath := filepath.Join(outDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.New(errors.CodeGenerationAborted).Wrap(err)
	}
	if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return errors.New(errors.CodeGenerationAborted).Wrap(err)
	}
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func jsString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// slugify lowercases and hyphenates an app name for package fields.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
