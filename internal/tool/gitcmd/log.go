package gitcmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
	// logFormat emits hash, author, strict ISO author date and raw body.
	logFormat = "--format=%H%x1f%an <%ae>%x1f%aI%x1f%B%x1e"
)

// LogRequest lists commits. Timestamps are handed to git's own date parser,
// so "2024-01-15", "2024-01-15T14:30:25" and "2 weeks ago" all work.
type LogRequest struct {
	MaxCount       int      `json:"max_count"`
	RevisionRange  string   `json:"revision_range"`
	Paths          []string `json:"paths"`
	StartTimestamp string   `json:"start_timestamp"`
	EndTimestamp   string   `json:"end_timestamp"`
}

func (r *LogRequest) Validate(cfg *config.Config) error {
	return firstError(
		inRange("max_count", r.MaxCount, 1, cfg.Tools.MaxLogCount),
		rejectFlag("revision_range", r.RevisionRange),
	)
}

// Log runs git log and returns one formatted entry per commit.
func Log(ctx context.Context, repo Repository, req *LogRequest) ([]string, error) {
	args := []string{"log", "--max-count=" + strconv.Itoa(req.MaxCount), logFormat}
	if req.StartTimestamp != "" {
		args = append(args, "--since="+req.StartTimestamp)
	}
	if req.EndTimestamp != "" {
		args = append(args, "--until="+req.EndTimestamp)
	}
	if req.RevisionRange != "" {
		args = append(args, req.RevisionRange)
	}

	out, err := repo.Run(ctx, afterRevisions(args, req.Paths)...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

func parseLog(out string) []string {
	var entries []string
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 4)
		if len(fields) < 4 {
			continue
		}
		entries = append(entries, fmt.Sprintf("Commit: %s\nAuthor: %s\nDate: %s\nMessage: %s\n",
			fields[0], fields[1], fields[2], strings.TrimRight(fields[3], "\n")))
	}
	return entries
}
