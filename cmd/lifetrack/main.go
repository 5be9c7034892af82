package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/cli/backups"
	"github.com/julianstephens/lifetrack/internal/cli/branding"
	"github.com/julianstephens/lifetrack/internal/cli/coding"
	"github.com/julianstephens/lifetrack/internal/cli/daily"
	"github.com/julianstephens/lifetrack/internal/cli/networking"
	"github.com/julianstephens/lifetrack/internal/cli/protect"
	"github.com/julianstephens/lifetrack/internal/cli/reading"
	"github.com/julianstephens/lifetrack/internal/cli/report"
	"github.com/julianstephens/lifetrack/internal/cli/settings"
	"github.com/julianstephens/lifetrack/internal/cli/system"
	"github.com/julianstephens/lifetrack/internal/cli/wellness"
	"github.com/julianstephens/lifetrack/internal/config"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/errors"
	"github.com/julianstephens/lifetrack/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Path to config.yaml (default ~/.config/lifetrack/config.yaml)." type:"path"`
	Database string `help:"Override the local database path for this run." type:"path"`
	Backend  string `help:"Override the local backend for this run." enum:",sqlite,json" default:""`
	Offline  bool   `help:"Do not contact the remote mirror."`
	Debug    bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize local storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve    system.ServeCmd    `cmd:"" help:"Serve the HTTP API."`
	MCP      system.MCPCmd      `cmd:"" name:"mcp" help:"Serve the Model Context Protocol over stdio."`
	Sync     system.SyncCmd     `cmd:"" help:"Push pending changes to the remote mirror and adopt newer remote state."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for dangling references."`
	Stats    report.StatsCmd    `cmd:"" help:"Show the dashboard or one system's statistics."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage local backups."`
	Settings struct {
		List        settings.ListCmd        `cmd:"" help:"List settings." default:"1"`
		Get         settings.GetCmd         `cmd:"" help:"Show one setting."`
		Set         settings.SetCmd         `cmd:"" help:"Change one setting."`
		APIPassword settings.APIPasswordCmd `cmd:"" name:"api-password" help:"Set the HTTP API login password."`
		Keyring     struct {
			Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
			Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret, masked."`
			Delete system.KeyringDeleteCmd `cmd:"" help:"Delete a stored secret."`
			Status system.KeyringStatusCmd `cmd:"" help:"List which secrets are stored." default:"1"`
		} `cmd:"" help:"Manage secrets in the OS keyring."`
	} `cmd:"" name:"config" help:"Manage application settings."`

	Task struct {
		Add    daily.TaskAddCmd    `cmd:"" help:"Add a task."`
		List   daily.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
		Done   daily.TaskDoneCmd   `cmd:"" help:"Toggle a task's completion."`
		Edit   daily.TaskEditCmd   `cmd:"" help:"Edit a task."`
		Delete daily.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage daily tasks."`
	Goal struct {
		Add      daily.GoalAddCmd      `cmd:"" help:"Add a weekly goal."`
		List     daily.GoalListCmd     `cmd:"" help:"List this week's goals." default:"1"`
		Progress daily.GoalProgressCmd `cmd:"" help:"Set a goal's progress."`
		Delete   daily.GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
	} `cmd:"" help:"Manage weekly goals."`
	Note struct {
		Add    daily.NoteAddCmd    `cmd:"" help:"Add a note."`
		List   daily.NoteListCmd   `cmd:"" help:"List recent notes." default:"1"`
		Delete daily.NoteDeleteCmd `cmd:"" help:"Delete a note."`
	} `cmd:"" help:"Manage life notes."`
	Focus   daily.FocusCmd   `cmd:"" help:"Show or set today's focus."`
	Profile daily.ProfileCmd `cmd:"" help:"Show or update your profile."`

	Meditate struct {
		Log    wellness.MeditateLogCmd    `cmd:"" help:"Log a meditation session."`
		List   wellness.MeditateListCmd   `cmd:"" help:"List sessions." default:"1"`
		Delete wellness.MeditateDeleteCmd `cmd:"" help:"Delete a session."`
	} `cmd:"" help:"Track meditation."`
	Workout struct {
		Log    wellness.WorkoutLogCmd  `cmd:"" help:"Log a workout session."`
		Next   wellness.WorkoutNextCmd `cmd:"" help:"Recommend the next session's load."`
		Injury struct {
			Add     wellness.InjuryAddCmd     `cmd:"" help:"Record an injury."`
			Resolve wellness.InjuryResolveCmd `cmd:"" help:"Mark an injury healed."`
		} `cmd:"" help:"Track injuries."`
	} `cmd:"" help:"Track workouts."`
	Looks struct {
		Show   wellness.LooksShowCmd   `cmd:"" help:"Check in and show progress." default:"1"`
		Lesson wellness.LooksLessonCmd `cmd:"" help:"Complete a lesson."`
		Habit  wellness.LooksHabitCmd  `cmd:"" help:"Toggle today's habit."`
	} `cmd:"" help:"Follow the looksmaxxing course."`

	Book struct {
		Add    reading.BookAddCmd    `cmd:"" help:"Add a book."`
		List   reading.BookListCmd   `cmd:"" help:"List books." default:"1"`
		Status reading.BookStatusCmd `cmd:"" help:"Change a book's status."`
		Move   reading.BookMoveCmd   `cmd:"" help:"Move a book to a folder."`
		Delete reading.BookDeleteCmd `cmd:"" help:"Delete a book with its sessions and insights."`
	} `cmd:"" help:"Manage books."`
	Folder struct {
		Add    reading.FolderAddCmd    `cmd:"" help:"Add a folder."`
		List   reading.FolderListCmd   `cmd:"" help:"List folders." default:"1"`
		Delete reading.FolderDeleteCmd `cmd:"" help:"Delete a folder and its books."`
	} `cmd:"" help:"Manage book folders."`
	Read struct {
		Log    reading.SessionLogCmd    `cmd:"" help:"Log a reading session." default:"withargs"`
		Delete reading.SessionDeleteCmd `cmd:"" help:"Delete a reading session."`
	} `cmd:"" help:"Track reading sessions."`
	Insight struct {
		Show   reading.InsightShowCmd   `cmd:"" help:"Show a book's insights." default:"withargs"`
		Add    reading.InsightAddCmd    `cmd:"" help:"Add an insight item."`
		Remove reading.InsightRemoveCmd `cmd:"" help:"Remove an insight item."`
		Link   reading.InsightLinkCmd   `cmd:"" help:"Link an item to a quote."`
		Done   reading.InsightDoneCmd   `cmd:"" help:"Toggle an action or reminder."`
	} `cmd:"" help:"Manage book insights."`

	Code struct {
		Week struct {
			Add    coding.WeekAddCmd    `cmd:"" help:"Add a week to a learning path."`
			List   coding.WeekListCmd   `cmd:"" help:"List learning paths." default:"withargs"`
			Status coding.WeekStatusCmd `cmd:"" help:"Change a week's status."`
			Delete coding.WeekDeleteCmd `cmd:"" help:"Delete a week."`
		} `cmd:"" help:"Manage learning paths."`
		Problem struct {
			Add    coding.ProblemAddCmd    `cmd:"" help:"Add a problem."`
			List   coding.ProblemListCmd   `cmd:"" help:"List problems." default:"1"`
			Status coding.ProblemStatusCmd `cmd:"" help:"Change a problem's status."`
			Delete coding.ProblemDeleteCmd `cmd:"" help:"Delete a problem."`
		} `cmd:"" help:"Track DSA problems."`
		Note struct {
			Add    coding.CSNoteAddCmd    `cmd:"" help:"Add a CS note."`
			List   coding.CSNoteListCmd   `cmd:"" help:"List CS notes." default:"1"`
			Delete coding.CSNoteDeleteCmd `cmd:"" help:"Delete a CS note."`
		} `cmd:"" help:"Manage CS notes."`
		Video struct {
			Add    coding.VideoAddCmd    `cmd:"" help:"Save a video."`
			List   coding.VideoListCmd   `cmd:"" help:"List videos." default:"1"`
			Delete coding.VideoDeleteCmd `cmd:"" help:"Delete a video."`
		} `cmd:"" help:"Manage video resources."`
		Project struct {
			Add    coding.ProjectAddCmd    `cmd:"" help:"Add a project."`
			List   coding.ProjectListCmd   `cmd:"" help:"List projects." default:"1"`
			Status coding.ProjectStatusCmd `cmd:"" help:"Change a project's status."`
			Delete coding.ProjectDeleteCmd `cmd:"" help:"Delete a project."`
		} `cmd:"" help:"Manage coding projects."`
		Debug struct {
			Add    coding.DebugAddCmd    `cmd:"" help:"Log a debugging session."`
			List   coding.DebugListCmd   `cmd:"" help:"List debug logs." default:"1"`
			Delete coding.DebugDeleteCmd `cmd:"" help:"Delete a debug log."`
		} `cmd:"" help:"Keep a debugging log."`
		Skill struct {
			Add    coding.SkillAddCmd    `cmd:"" help:"Add a skill."`
			List   coding.SkillListCmd   `cmd:"" help:"List skills." default:"1"`
			Revise coding.SkillReviseCmd `cmd:"" help:"Log a revision."`
			Rate   coding.SkillRateCmd   `cmd:"" help:"Change depth or readiness."`
			Error  coding.SkillErrorCmd  `cmd:"" help:"Record a recurring mistake."`
			Delete coding.SkillDeleteCmd `cmd:"" help:"Delete a skill."`
		} `cmd:"" help:"Track skill mastery."`
	} `cmd:"" help:"Track coding practice."`

	Brand struct {
		Overview branding.OverviewCmd `cmd:"" help:"Show the branding overview." default:"1"`
		Content  struct {
			Add     branding.ContentAddCmd     `cmd:"" help:"Add a content idea."`
			List    branding.ContentListCmd    `cmd:"" help:"List content." default:"1"`
			Show    branding.ContentShowCmd    `cmd:"" help:"Show content with its analysis."`
			Status  branding.ContentStatusCmd  `cmd:"" help:"Change a content item's status."`
			Analyze branding.ContentAnalyzeCmd `cmd:"" help:"Run the strategic LLM analysis."`
			Compare branding.ContentCompareCmd `cmd:"" help:"Compare your content with another creator's."`
			Delete  branding.ContentDeleteCmd  `cmd:"" help:"Delete a content item."`
		} `cmd:"" help:"Manage branding content."`
		Theme struct {
			Add    branding.ThemeAddCmd    `cmd:"" help:"Add a core theme."`
			Delete branding.ThemeDeleteCmd `cmd:"" help:"Delete a core theme."`
		} `cmd:"" help:"Manage core themes."`
		Platform struct {
			Add    branding.PlatformAddCmd    `cmd:"" help:"Add a platform."`
			Delete branding.PlatformDeleteCmd `cmd:"" help:"Delete a platform."`
		} `cmd:"" help:"Manage platforms."`
		Score       branding.ScoreCmd       `cmd:"" help:"Record a consistency score."`
		Positioning branding.PositioningCmd `cmd:"" help:"Show or update positioning and audience."`
	} `cmd:"" help:"Build your personal brand."`

	Network struct {
		Connection struct {
			Add    networking.ConnectionAddCmd    `cmd:"" help:"Add a connection."`
			List   networking.ConnectionListCmd   `cmd:"" help:"List connections." default:"1"`
			Show   networking.ConnectionShowCmd   `cmd:"" help:"Show a connection."`
			Edit   networking.ConnectionEditCmd   `cmd:"" help:"Edit a connection."`
			Touch  networking.ConnectionTouchCmd  `cmd:"" help:"Log an interaction."`
			Delete networking.ConnectionDeleteCmd `cmd:"" help:"Delete a connection."`
		} `cmd:"" help:"Manage connections."`
		Outcome networking.OutcomeAddCmd `cmd:"" help:"Record an outcome from a connection."`
		Retro   networking.RetroAddCmd   `cmd:"" help:"Record a relationship retrospective."`
		Starter struct {
			Add    networking.StarterAddCmd    `cmd:"" help:"Save a conversation starter."`
			List   networking.StarterListCmd   `cmd:"" help:"List starters." default:"1"`
			Delete networking.StarterDeleteCmd `cmd:"" help:"Delete a starter."`
		} `cmd:"" help:"Manage conversation starters."`
		Template struct {
			Add    networking.TemplateAddCmd    `cmd:"" help:"Save a message template."`
			List   networking.TemplateListCmd   `cmd:"" help:"List templates." default:"1"`
			Delete networking.TemplateDeleteCmd `cmd:"" help:"Delete a template."`
		} `cmd:"" help:"Manage message templates."`
	} `cmd:"" help:"Manage your network."`

	Protect struct {
		Status  protect.StatusCmd  `cmd:"" help:"Show protection settings." default:"1"`
		Enable  protect.EnableCmd  `cmd:"" help:"Turn the content filter on."`
		Disable protect.DisableCmd `cmd:"" help:"Turn the content filter off."`
		Level   protect.LevelCmd   `cmd:"" help:"Set the protection level."`
		Vital   protect.VitalCmd   `cmd:"" help:"Toggle vital blocking."`
		Pin     protect.PINCmd     `cmd:"" help:"Set or change the PIN."`
		Block   protect.BlockCmd   `cmd:"" help:"Block a domain or keyword."`
		Unblock protect.UnblockCmd `cmd:"" help:"Unblock a domain or keyword."`
		Partner protect.PartnerCmd `cmd:"" help:"Set or clear the accountability partner."`
		Check   protect.CheckCmd   `cmd:"" help:"Check a URL or text against the filter."`
		History protect.HistoryCmd `cmd:"" help:"Show or clear blocked attempts."`
	} `cmd:"" help:"Manage content protection."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal life tracker: habits, reading, coding, branding and networking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := applyOverrides(cfg); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug || cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Starting", "command", kctx.Command(), "backend", cfg.Backend, "database", cfg.Database)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	appCtx := cli.New(ctx, cfg)
	appCtx.Offline = CLI.Offline

	err = kctx.Run(appCtx)
	err = stderrors.Join(err, appCtx.Close())
	stop()
	errors.Fatal(err)
}

// applyOverrides applies the per-run flags. They are validated like settings but never saved.
func applyOverrides(cfg *config.Config) error {
	if CLI.Database != "" {
		if err := cfg.Set(constants.SettingDatabase, CLI.Database); err != nil {
			return err
		}
	}
	if CLI.Backend != "" {
		if err := cfg.Set(constants.SettingBackend, CLI.Backend); err != nil {
			return err
		}
	}
	return nil
}
