package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"compactgeo/internal/geom"
	"compactgeo/internal/source"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !source.Supported(name) {
			continue
		}
		desc := strings.ToLower(filepath.Ext(name))
		if info, err := e.Info(); err == nil {
			desc += " " + humanize.Bytes(uint64(info.Size()))
		}
		items = append(items, fileItem{title: name, desc: desc, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no " + strings.Join(source.Extensions(), " ") + " files in current directory"
	}
}

func counts(d geom.Data) string {
	return fmt.Sprintf("counts: pts=%s ls=%s poly=%s vertices=%s",
		humanize.Comma(int64(len(d.Points))), humanize.Comma(int64(len(d.Lines))),
		humanize.Comma(int64(len(d.Polygons))), humanize.Comma(int64(len(d.Vertices))))
}

// loadPath loads any supported format into the model.
func (m *Model) loadPath(p string) {
	d, err := source.Load(p)
	if err != nil {
		m.log.Warn("load failed", zap.String("path", p), zap.Error(err))
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.pasted = ""
	m.setData(d)
	m.log.Info("loaded", zap.String("path", p), zap.Int("vertices", len(d.Vertices)), zap.Int("parts", len(d.Groups)))
	m.status = "loaded: " + filepath.Base(p) + "  " + counts(d)
	m.revalidateAttrs()
}

// loadText renders pasted text.
func (m *Model) loadText(text string) bool {
	d, err := source.ParseText(text)
	if err != nil {
		m.log.Warn("paste rejected", zap.Error(err))
		m.status = "paste error: " + err.Error()
		return false
	}
	m.selPath = ""
	m.pasted = strings.TrimSpace(text)
	m.setData(d)
	m.log.Info("pasted", zap.Int("vertices", len(d.Vertices)))
	m.status = "rendered paste  " + counts(d)
	m.revalidateAttrs()
	return true
}

// revalidateAttrs keeps the attribute view open only if the new dataset has
// something to show.
func (m *Model) revalidateAttrs() {
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
