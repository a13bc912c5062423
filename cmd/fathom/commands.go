package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/theory/jsonpath"

	"fathom/internal/document"
	"fathom/internal/filter"
	"fathom/internal/query"
	"fathom/internal/store"
)

// loadCollection builds a collection from --load or --data and applies any
// --index flags.
func loadCollection(cmd *cobra.Command, logger *slog.Logger) (*store.Collection, error) {
	dataPath, _ := cmd.Flags().GetString("data")
	snapPath, _ := cmd.Flags().GetString("load")

	col := store.NewCollection("cli", logger)
	switch {
	case snapPath != "":
		if err := col.Load(snapPath); err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	case dataPath != "":
		if err := loadJSONLines(col, dataPath); err != nil {
			return nil, fmt.Errorf("load documents: %w", err)
		}
	default:
		return nil, errors.New("one of --data or --load is required")
	}

	indexFlags, _ := cmd.Flags().GetStringArray("index")
	paths := make([]document.FieldPath, 0, len(indexFlags))
	for _, raw := range indexFlags {
		p, err := document.ParsePath(raw)
		if err != nil {
			return nil, fmt.Errorf("index path %q: %w", raw, err)
		}
		paths = append(paths, p)
	}
	if len(paths) > 0 {
		col.BuildIndexes(paths)
	}
	return col, nil
}

// loadJSONLines inserts one document per non-empty line of a JSON-lines file.
func loadJSONLines(col *store.Collection, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		col.Insert(fields)
	}
	return scanner.Err()
}

// loadFilter reads the filter description from --filter.
func loadFilter(cmd *cobra.Command) (filter.Filter, error) {
	filterPath, _ := cmd.Flags().GetString("filter")
	if filterPath == "" {
		return nil, errors.New("--filter is required")
	}
	raw, err := os.ReadFile(filterPath)
	if err != nil {
		return nil, err
	}
	f, err := decodeFilter(raw)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	return f, nil
}

func newQueryCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a filter and print matching documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection(cmd, logger)
			if err != nil {
				return err
			}
			f, err := loadFilter(cmd)
			if err != nil {
				return err
			}

			engine := query.New(col, logger)
			docs, err := engine.Execute(cmd.Context(), f)
			if err != nil {
				return err
			}

			project, _ := cmd.Flags().GetString("project")
			var selector *jsonpath.Path
			if project != "" {
				selector, err = jsonpath.Parse(project)
				if err != nil {
					return fmt.Errorf("project expression: %w", err)
				}
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			for _, doc := range docs {
				if selector != nil {
					for _, node := range selector.Select(doc.Fields) {
						if err := out.Encode(node); err != nil {
							return err
						}
					}
					continue
				}
				if err := out.Encode(doc.Fields); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("filter", "", "filter description file (JSON)")
	cmd.Flags().String("project", "", "JSONPath to project from each match")
	return cmd
}

func newExplainCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the execution plan for a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := loadCollection(cmd, logger)
			if err != nil {
				return err
			}
			f, err := loadFilter(cmd)
			if err != nil {
				return err
			}

			engine := query.New(col, logger)
			plan, err := engine.Explain(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), plan.String())
			return nil
		},
	}
	cmd.Flags().String("filter", "", "filter description file (JSON)")
	return cmd
}

func newSnapshotCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write the loaded documents as a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return errors.New("--out is required")
			}
			col, err := loadCollection(cmd, logger)
			if err != nil {
				return err
			}
			if err := col.Save(out); err != nil {
				return err
			}
			logger.Info("snapshot written", "path", out, "documents", col.Len())
			return nil
		},
	}
	cmd.Flags().String("out", "", "snapshot output path")
	return cmd
}
