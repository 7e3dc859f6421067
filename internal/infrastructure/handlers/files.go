// Package handlers performs the side effect behind each intent.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const maxAmbiguousListed = 5

// FileHandler serves file_creation and file_management.
type FileHandler struct {
	Config    domain.Config
	Validator ports.Validator
	Writer    ports.DocumentWriter
	Generator ports.ContentGenerator
	Opener    ports.Opener
	Logger    ports.Logger
}

// Handle implements ports.Handler.
func (h *FileHandler) Handle(ctx context.Context, rec domain.IntentRecord) (ports.HandlerResult, error) {
	var (
		result domain.ExecutionResult
		err    error
	)
	switch rec.Action() {
	case domain.ActionCreateWord, domain.ActionCreateExcel, domain.ActionCreatePDF, domain.ActionCreatePython, domain.ActionCreateText:
		result, err = h.create(ctx, rec)
	case domain.ActionFindFile:
		result, err = h.find(ctx, rec.String(domain.ParamQuery))
	case domain.ActionDeleteFile:
		return h.delete(ctx, rec.String(domain.ParamQuery))
	case domain.ActionListFiles:
		result, err = h.list()
	default:
		err = fmt.Errorf("%w: %s", domain.ErrUnknownAction, rec.Action())
	}
	return ports.HandlerResult{Result: result}, err
}

// Commit finishes a confirmed deletion.
func (h *FileHandler) Commit(_ context.Context, pending domain.PendingConfirmation) (domain.ExecutionResult, error) {
	if pending.Action != domain.ActionDeleteFile {
		return domain.ExecutionResult{}, fmt.Errorf("%w: cannot commit %s", domain.ErrUnknownAction, pending.Action)
	}
	return h.remove(pending.Payload)
}

func (h *FileHandler) create(ctx context.Context, rec domain.IntentRecord) (domain.ExecutionResult, error) {
	wantExt := domain.ExtensionForAction(rec.Action())
	name := strings.TrimSpace(rec.String(domain.ParamFilename))
	if name == "" {
		name = "document" + wantExt
	}
	if filepath.Ext(name) == "" {
		name += wantExt
	}

	name, err := h.Validator.ValidateFilename(name)
	if err != nil {
		return domain.ExecutionResult{}, err
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !h.Config.IsFileTypeEnabled(ext) || !h.Writer.Supports(ext) {
		return domain.ExecutionResult{}, fmt.Errorf("%w: %s files are not enabled", domain.ErrUnknownAction, ext)
	}

	content := rec.String(domain.ParamContent)
	if rec.Bool(domain.ParamIsTopic) && strings.TrimSpace(content) != "" {
		content, err = h.Generator.Generate(ctx, content, contentKind(ext))
		if err != nil {
			return domain.ExecutionResult{}, fmt.Errorf("generate content: %w", err)
		}
	}
	content = h.Validator.SanitizeContent(content)

	path, err := h.Validator.ValidatePath(filepath.Join(h.Config.Workspace.Dir, name))
	if err != nil {
		return domain.ExecutionResult{}, err
	}
	if err := h.Writer.Write(path, content); err != nil {
		return domain.ExecutionResult{}, err
	}
	h.Logger.Info("file created", map[string]interface{}{"path": path})

	effects := []domain.SideEffect{{Kind: domain.EffectFileCreated, Target: path}}
	text := fmt.Sprintf("✅ Created %s\n📁 %s", name, path)
	if h.Config.Files.OpenAfterCreate && h.Opener != nil {
		if err := h.Opener.Open(ctx, path); err != nil {
			h.Logger.Warn("could not open created file", map[string]interface{}{"path": path, "error": err.Error()})
			text += "\n(I couldn't open it automatically.)"
		} else {
			effects = append(effects, domain.SideEffect{Kind: domain.EffectFileOpened, Target: path})
		}
	}
	return domain.Succeeded(text, effects...), nil
}

func contentKind(ext string) ports.ContentKind {
	switch ext {
	case ".xlsx":
		return ports.ContentJSON
	case ".py":
		return ports.ContentCode
	default:
		return ports.ContentText
	}
}

func (h *FileHandler) find(ctx context.Context, query string) (domain.ExecutionResult, error) {
	matches, err := h.search(ctx, query)
	if err != nil {
		return domain.ExecutionResult{}, err
	}
	if len(matches) == 0 {
		return domain.Failed(fmt.Sprintf("No files found matching '%s'.", query)), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d file(s) matching '%s':", len(matches), query)
	for _, m := range matches {
		b.WriteString("\n- ")
		b.WriteString(m)
	}
	return domain.Succeeded(b.String()), nil
}

func (h *FileHandler) delete(ctx context.Context, query string) (ports.HandlerResult, error) {
	matches, err := h.search(ctx, query)
	if err != nil {
		return ports.HandlerResult{}, err
	}

	switch len(matches) {
	case 0:
		return ports.HandlerResult{Result: domain.Failed(fmt.Sprintf("No file found matching '%s'.", query))}, nil
	case 1:
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d files matching '%s'. Please be more specific:", len(matches), query)
		for i, m := range matches {
			if i == maxAmbiguousListed {
				break
			}
			b.WriteString("\n- ")
			b.WriteString(m)
		}
		return ports.HandlerResult{Result: domain.Failed(b.String())}, nil
	}

	path, err := h.Validator.ValidatePath(matches[0])
	if err != nil {
		return ports.HandlerResult{}, err
	}
	if !h.Config.RequiresDeleteConfirmation() {
		result, err := h.remove(path)
		return ports.HandlerResult{Result: result}, err
	}
	return ports.HandlerResult{Confirm: &domain.PendingConfirmation{
		Intent:  domain.IntentFileManagement,
		Action:  domain.ActionDeleteFile,
		Payload: path,
		Prompt:  fmt.Sprintf("I found: %s\n\n⚠️ Are you sure you want to permanently delete it? (yes/no)", path),
	}}, nil
}

func (h *FileHandler) remove(target string) (domain.ExecutionResult, error) {
	path, err := h.Validator.ValidatePath(target)
	if err != nil {
		return domain.ExecutionResult{}, err
	}
	if h.isProtected(path) {
		return domain.ExecutionResult{}, fmt.Errorf("%w: %s is managed by JARVIS and cannot be deleted", domain.ErrInvalidInput, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Failed(fmt.Sprintf("File not found: %s", path)), nil
		}
		return domain.ExecutionResult{}, err
	}
	if info.IsDir() {
		return domain.ExecutionResult{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if err := os.Remove(path); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("delete %s: %w", path, err)
	}
	h.Logger.Info("file deleted", map[string]interface{}{"path": path})
	return domain.Succeeded("🗑️ Deleted: "+path, domain.SideEffect{Kind: domain.EffectFileDeleted, Target: path}), nil
}

// isProtected reports hidden files and the command history log.
func (h *FileHandler) isProtected(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	historyFile := h.Config.History.File
	if historyFile == "" {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(historyFile); err == nil {
		historyFile = resolved
	}
	return filepath.Clean(historyFile) == filepath.Clean(path)
}

// search walks every search root concurrently and returns up to the
// configured number of files whose name contains query, in root order.
func (h *FileHandler) search(ctx context.Context, query string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, fmt.Errorf("%w: tell me which file to look for", domain.ErrInvalidInput)
	}
	limit := h.Config.GetMaxSearchResults()
	roots := h.searchRoots()
	found := make([][]string, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(roots) + 1)
	for i, root := range roots {
		g.Go(func() error {
			matches, err := walkMatches(gctx, root, query, limit)
			found[i] = matches
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, matches := range found {
		for _, m := range matches {
			if seen[m] || len(out) == limit || h.isProtected(m) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func (h *FileHandler) searchRoots() []string {
	roots := h.Config.Workspace.SearchDirs
	if len(roots) == 0 {
		roots = []string{h.Config.Workspace.Dir}
	}
	return roots
}

func walkMatches(ctx context.Context, root string, query string, limit int) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if strings.Contains(strings.ToLower(d.Name()), query) {
			matches = append(matches, path)
			if len(matches) >= limit {
				return fs.SkipAll
			}
		}
		return nil
	})
	return matches, err
}

func (h *FileHandler) list() (domain.ExecutionResult, error) {
	dir := h.Config.Workspace.Dir
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Succeeded("Your workspace is empty."), nil
		}
		return domain.ExecutionResult{}, fmt.Errorf("read workspace: %w", err)
	}

	type row struct {
		name string
		info fs.FileInfo
	}
	var rows []row
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		rows = append(rows, row{name: e.Name(), info: info})
	}
	if len(rows) == 0 {
		return domain.Succeeded("Your workspace is empty."), nil
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	var b strings.Builder
	fmt.Fprintf(&b, "📁 %d file(s) in %s:", len(rows), dir)
	for _, r := range rows {
		fmt.Fprintf(&b, "\n- %s (%s, modified %s)", r.name, humanize.Bytes(uint64(r.info.Size())), humanize.Time(r.info.ModTime()))
	}
	return domain.Succeeded(b.String()), nil
}

var (
	_ ports.Handler   = (*FileHandler)(nil)
	_ ports.Committer = (*FileHandler)(nil)
)
