package dispatcher

import (
	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/gitcmd"
)

const dateFormats = "Accepts ISO 8601 (e.g. '2024-01-15T14:30:25'), relative dates (e.g. '2 weeks ago', 'yesterday') " +
	"or absolute dates (e.g. '2024-01-15', 'Jan 15 2024')"

func paths(desc string) *tool.Schema {
	return &tool.Schema{Type: tool.TypeArray, Description: desc, Items: &tool.Schema{Type: tool.TypeString}}
}

func str(desc string) *tool.Schema {
	return &tool.Schema{Type: tool.TypeString, Description: desc}
}

// objectSchema builds an argument schema that always carries the required repo_path.
func objectSchema(props map[string]*tool.Schema, required ...string) *tool.Schema {
	props["repo_path"] = str("Path to the Git repository")
	return &tool.Schema{
		Type:       tool.TypeObject,
		Properties: props,
		Required:   append([]string{"repo_path"}, required...),
	}
}

func diffProps(cfg *config.Config) map[string]*tool.Schema {
	return map[string]*tool.Schema{
		"context_lines": {
			Type:        tool.TypeInteger,
			Description: "Number of context lines around each change",
			Default:     cfg.Tools.DefaultContextLines,
		},
		"ignore_whitespace": {Type: tool.TypeBoolean, Description: "Ignore whitespace when comparing lines"},
		"paths":             paths("Limit the diff to these paths"),
	}
}

// catalog returns every tool the dispatcher serves, keyed by name.
func catalog(cfg *config.Config) map[string]tool.Declaration {
	decls := []tool.Declaration{
		{
			Name:        gitcmd.ToolStatus,
			Description: "Shows the working tree status",
			Parameters:  objectSchema(map[string]*tool.Schema{"paths": paths("Limit the status to these paths")}),
		},
		{
			Name:        gitcmd.ToolDiffUnstaged,
			Description: "Shows changes in the working directory that are not yet staged",
			Parameters:  objectSchema(diffProps(cfg)),
		},
		{
			Name:        gitcmd.ToolDiffStaged,
			Description: "Shows changes that are staged for commit",
			Parameters:  objectSchema(diffProps(cfg)),
		},
		{
			Name:        gitcmd.ToolDiff,
			Description: "Shows differences between branches or commits",
			Parameters: objectSchema(func() map[string]*tool.Schema {
				props := diffProps(cfg)
				props["target"] = str("Branch or commit to diff")
				props["base"] = str("Optional branch or commit to compare target against")
				props["merge_base"] = &tool.Schema{
					Type: tool.TypeBoolean,
					Description: "When base is given, diff target against the merge base of base and target " +
						"(like 'git diff base...target'), showing only the changes introduced on target",
				}
				return props
			}(), "target"),
		},
		{
			Name:        gitcmd.ToolCommit,
			Description: "Records changes to the repository",
			Parameters: objectSchema(map[string]*tool.Schema{
				"message":      str("Commit message"),
				"author_name":  str("Author name; used only together with author_email"),
				"author_email": str("Author email; used only together with author_name"),
			}, "message"),
		},
		{
			Name:        gitcmd.ToolAdd,
			Description: "Adds file contents to the staging area",
			Parameters: objectSchema(map[string]*tool.Schema{
				"files": paths("Files to stage; [\".\"] stages everything"),
			}, "files"),
		},
		{
			Name:        gitcmd.ToolReset,
			Description: "Unstages staged changes, either for the given paths or all of them",
			Parameters:  objectSchema(map[string]*tool.Schema{"paths": paths("Paths to unstage; omit to unstage everything")}),
		},
		{
			Name:        gitcmd.ToolLog,
			Description: "Shows the commit logs",
			Parameters: objectSchema(map[string]*tool.Schema{
				"max_count": {
					Type:        tool.TypeInteger,
					Description: "Maximum number of commits to show",
					Default:     cfg.Tools.DefaultLogCount,
				},
				"revision_range":  str("Revision range such as 'main..feature'"),
				"paths":           paths("Only commits touching these paths"),
				"start_timestamp": str("Only commits after this date. " + dateFormats),
				"end_timestamp":   str("Only commits before this date. " + dateFormats),
			}),
		},
		{
			Name:        gitcmd.ToolCreateBranch,
			Description: "Creates a new branch from an optional base branch",
			Parameters: objectSchema(map[string]*tool.Schema{
				"branch_name": str("Name of the new branch"),
				"base_branch": str("Existing branch or tag to start from; defaults to the current branch"),
			}, "branch_name"),
		},
		{
			Name:        gitcmd.ToolCheckout,
			Description: "Switches branches",
			Parameters:  objectSchema(map[string]*tool.Schema{"branch_name": str("Branch to switch to")}, "branch_name"),
		},
		{
			Name:        gitcmd.ToolShow,
			Description: "Shows the contents of a commit",
			Parameters:  objectSchema(map[string]*tool.Schema{"revision": str("Commit, branch or tag to show")}, "revision"),
		},
		{
			Name:        gitcmd.ToolGrep,
			Description: "Search for a pattern in the repository",
			Parameters: objectSchema(map[string]*tool.Schema{
				"pattern":      str("Pattern to search for"),
				"revision":     str("Search this revision instead of the working tree"),
				"paths":        paths("Limit the search to these paths"),
				"ignore_case":  {Type: tool.TypeBoolean, Description: "Case-insensitive match"},
				"line_numbers": {Type: tool.TypeBoolean, Description: "Prefix matches with line numbers", Default: true},
			}, "pattern"),
		},
		{
			Name:        gitcmd.ToolBranch,
			Description: "List Git branches",
			Parameters: objectSchema(map[string]*tool.Schema{
				"branch_type": {
					Type:        tool.TypeString,
					Description: "Whether to list local branches ('local'), remote branches ('remote') or all branches ('all')",
					Default:     gitcmd.BranchLocal,
				},
				"contains":     str("Only branches containing this commit"),
				"not_contains": str("Only branches not containing this commit"),
			}),
		},
	}

	byName := make(map[string]tool.Declaration, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}
	return byName
}
