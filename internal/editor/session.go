package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"curator/internal/logging"
	"curator/internal/meta"
	"curator/internal/scan"
)

// Session drives one interactive editing run over a content root.
type Session struct {
	root     string
	store    *meta.Store
	scanner  *scan.Scanner
	prompter Prompter
	out      io.Writer
	logger   *slog.Logger
}

func NewSession(root string, store *meta.Store, prompter Prompter, out io.Writer, logger *slog.Logger) *Session {
	return &Session{
		root:     root,
		store:    store,
		scanner:  scan.New(store),
		prompter: prompter,
		out:      out,
		logger:   logging.NewComponentLogger(logger, "editor"),
	}
}

// ask reads one line and applies the global exit tokens.
func (s *Session) ask(prompt string) (string, error) {
	line, err := s.prompter.Ask(prompt)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "q":
		return "", ErrSessionExit
	}
	return strings.TrimSpace(line), nil
}

// Run loops folder selection, field selection, and batch application until
// the operator exits. Exit tokens and prompt aborts return nil: leaving the
// editor is a normal outcome.
func (s *Session) Run() error {
	for {
		folders, err := s.scanner.Folders(s.root)
		if err != nil {
			return fmt.Errorf("listing folders: %w", err)
		}
		if len(folders) == 0 {
			fmt.Fprintln(s.out, "no project folders found")
			return nil
		}

		selected, err := s.selectFolders(folders)
		if err != nil {
			if errors.Is(err, ErrSessionExit) {
				return nil
			}
			return err
		}
		if len(selected) == 0 {
			fmt.Fprintln(s.out, "no valid selection")
			continue
		}

		fields, err := s.selectFields()
		if err != nil {
			if errors.Is(err, ErrSessionExit) {
				return nil
			}
			return err
		}
		if fields.Empty() {
			fmt.Fprintln(s.out, "no fields selected")
			continue
		}

		plan, err := s.collectPlan(fields)
		if err != nil {
			if errors.Is(err, ErrSessionExit) {
				return nil
			}
			return err
		}

		if err := s.applyBatch(selected, fields, plan); err != nil {
			if errors.Is(err, ErrSessionExit) {
				return nil
			}
			return err
		}

		again, err := s.ask("Edit more folders? (y/N): ")
		if err != nil {
			if errors.Is(err, ErrSessionExit) {
				return nil
			}
			return err
		}
		switch strings.ToLower(again) {
		case "y", "yes", "restart":
		default:
			return nil
		}
	}
}

func (s *Session) selectFolders(folders []string) ([]string, error) {
	fmt.Fprintln(s.out, "Project folders:")
	for i, folder := range folders {
		marker := " "
		if _, err := s.store.Read(filepath.Join(s.root, folder)); errors.Is(err, meta.ErrNotFound) {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%3d%s %s\n", i+1, marker, folder)
	}
	fmt.Fprintln(s.out, "(* = no metadata yet)")
	input, err := s.ask("Select folders (numbers, comma separated, or 'all'): ")
	if err != nil {
		return nil, err
	}
	return SelectFolders(folders, input), nil
}

func (s *Session) selectFields() (FieldSet, error) {
	fmt.Fprintln(s.out, "Fields:")
	fmt.Fprintln(s.out, "  0) everything below")
	fmt.Fprintln(s.out, "  1) title")
	fmt.Fprintln(s.out, "  2) categories")
	fmt.Fprintln(s.out, "  3) cover image")
	fmt.Fprintln(s.out, "  4) location, date, description")
	fmt.Fprintln(s.out, "  5) sort order")
	fmt.Fprintln(s.out, "  6) gallery group")
	fmt.Fprintln(s.out, "  7) sync covers only")
	input, err := s.ask("Select fields (numbers, comma separated): ")
	if err != nil {
		return FieldSet{}, err
	}
	return ParseFields(input), nil
}

// applyBatch edits each selected folder in turn. A folder that fails
// validation is reported and skipped; the batch keeps going.
func (s *Session) applyBatch(folders []string, fields FieldSet, plan Plan) error {
	for _, folder := range folders {
		if err := s.applyFolder(folder, fields, plan); err != nil {
			if errors.Is(err, ErrSessionExit) {
				return err
			}
			fmt.Fprintf(s.out, "%s: %v\n", folder, err)
			s.logger.Warn("folder edit failed",
				logging.String("folder", folder),
				logging.Error(err))
		}
	}
	return nil
}

func (s *Session) applyFolder(folder string, fields FieldSet, plan Plan) error {
	path := filepath.Join(s.root, folder)
	record, err := s.store.Read(path)
	missing := errors.Is(err, meta.ErrNotFound)
	if err != nil {
		if !missing {
			return err
		}
		record = &meta.Record{}
	}

	images, err := s.store.ListImages(path)
	if err != nil {
		return err
	}

	if plan.Sync {
		if missing || len(images) == 0 {
			return nil
		}
		cover, _ := meta.ReconcileCover(record.Cover, images)
		if cover == record.Cover {
			fmt.Fprintf(s.out, "%s: cover already valid\n", folder)
			return nil
		}
		record.Cover = cover
		if err := s.store.Write(path, record); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s: cover set to %s\n", folder, cover)
		return nil
	}

	next := applyPlan(folder, record, plan)
	if !next.HasCategories() {
		return errors.New("categories required")
	}

	if plan.SetCover {
		cover, err := s.chooseCover(folder, next.Cover, images)
		if err != nil {
			return err
		}
		next.Cover = cover
	}
	cover, _ := meta.ReconcileCover(next.Cover, images)
	next.Cover = cover

	if err := s.store.Write(path, next); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: saved\n", folder)
	return nil
}

// chooseCover asks for a cover per folder since the candidates differ. An
// empty answer keeps the current value and lets reconciliation settle it.
func (s *Session) chooseCover(folder, current string, images []string) (string, error) {
	if len(images) == 0 {
		return current, nil
	}
	fmt.Fprintf(s.out, "%s images:\n", folder)
	for i, image := range images {
		marker := " "
		if image == current {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%3d%s %s\n", i+1, marker, image)
	}
	input, err := s.ask("Cover image number (empty keeps current): ")
	if err != nil {
		return "", err
	}
	if input == "" {
		return current, nil
	}
	choices := SelectFolders(images, input)
	if len(choices) == 0 {
		fmt.Fprintln(s.out, "invalid choice, keeping current cover")
		return current, nil
	}
	return choices[0], nil
}
