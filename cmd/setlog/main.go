// Command setlog is a terminal client for logging workouts: pick a template,
// enter set values with the same autofill behavior as the web client, rate
// sets, and save the finished workout to the remote API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/claude/setlog/internal/api"
	"github.com/claude/setlog/internal/auth"
	"github.com/claude/setlog/internal/config"
	"github.com/claude/setlog/internal/models"
	"github.com/claude/setlog/internal/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("setlog", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateClient(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	tokens := &auth.FileTokenSource{Path: cfg.Auth.TokenFile}

	token, err := tokens.IDToken(ctx)
	if err != nil {
		log.Error("no ID token available", "error", err)
		os.Exit(1)
	}
	identity, err := auth.ParseIdentity(token)
	if err != nil {
		log.Error("not signed in", "error", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, tokens, log)
	store := session.NewStore(client, identity, log)

	if err := store.Refresh(ctx); err != nil {
		log.Error("initial load failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Signed in as %s. Type 'help' for commands.\n", identity.Email)
	runLoop(ctx, store, os.Stdin)
}

func runLoop(ctx context.Context, store *session.Store, in *os.File) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "help":
			printHelp()
		case "templates":
			printTemplates(store.Templates())
		case "history":
			printHistory(store.History())
		case "start":
			cmdStart(ctx, store, rest)
		case "show":
			printActive(store.Active())
		case "set":
			cmdSet(store, rest)
		case "status":
			cmdStatus(store, rest)
		case "finish":
			cmdFinish(ctx, store)
		case "discard":
			store.Discard()
			fmt.Println("Workout discarded.")
		case "create":
			cmdCreate(ctx, store, rest)
		case "delete":
			cmdDelete(ctx, store, rest)
		case "quit", "exit":
			return
		default:
			fmt.Printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Print(`Commands:
  templates                      list workout templates
  history                        list completed workouts
  start <template#>              begin a workout from a template
  show                           show the active workout
  set <ex#> <set#> <field> <v>   enter a value (weight|reps|distance|time)
  status <ex#> <set#>            cycle a set's rating (good/medium/bad)
  finish                         save the workout
  discard                        drop the workout without saving
  create <name> :: <exercise>:<type>:<sets>, ...
                                 create a template (types: weights,
                                 bodyweight, timed, cardio)
  delete <template#>             delete a template
  quit                           exit
`)
}

func printTemplates(templates []models.Template) {
	if len(templates) == 0 {
		fmt.Println("No templates yet. Use 'create' to add one.")
		return
	}
	for i, tpl := range templates {
		fmt.Printf("%d. %s (%d exercises)\n", i+1, tpl.Name, len(tpl.Exercises))
	}
}

func printHistory(history []models.WorkoutRecord) {
	if len(history) == 0 {
		fmt.Println("No workouts logged yet.")
		return
	}
	for i, rec := range history {
		fmt.Printf("%d. %s — %d exercises\n", i+1,
			rec.CompletedAt.Local().Format("Mon Jan 2 15:04"), len(rec.ExerciseList))
	}
}

func cmdStart(ctx context.Context, store *session.Store, rest string) {
	templates := store.Templates()
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 || n > len(templates) {
		fmt.Println("Usage: start <template#> (see 'templates')")
		return
	}
	if err := store.Start(ctx, templates[n-1]); err != nil {
		fmt.Println("Could not start workout:", err)
		return
	}
	printActive(store.Active())
}

func printActive(w *session.Workout) {
	if w == nil {
		fmt.Println("No active workout. Use 'start' to begin one.")
		return
	}
	for i, ex := range w.ExerciseList {
		fmt.Printf("%d. %s [%s]\n", i+1, ex.Name, ex.MeasurementType)
		for j, set := range ex.Sets {
			fmt.Printf("   set %d: %s", j+1, formatValues(ex.MeasurementType, set.Values))
			if set.Status != models.StatusPending {
				fmt.Printf("  (%s)", set.Status)
			}
			fmt.Println()
		}
		if prev := previousFor(w, ex.ExerciseID); prev != "" {
			fmt.Printf("   last time: %s\n", prev)
		}
	}
}

// previousFor summarizes the matching exercise from the most recent prior
// workout, if any.
func previousFor(w *session.Workout, exerciseID string) string {
	if len(w.PreviousWorkouts) == 0 {
		return ""
	}
	for _, ex := range w.PreviousWorkouts[0].ExerciseList {
		if ex.ExerciseID != exerciseID {
			continue
		}
		parts := make([]string, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			parts = append(parts, formatValues(ex.MeasurementType, set.Values))
		}
		return strings.Join(parts, " | ")
	}
	return ""
}

func formatValues(mt models.MeasurementType, v models.SetValues) string {
	num := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	switch mt {
	case models.MeasurementWeights:
		return num(v.Weight) + " x " + num(v.Reps)
	case models.MeasurementBodyweight:
		return num(v.Reps) + " reps"
	case models.MeasurementTimed:
		if v.Time == nil {
			return "-"
		}
		return *v.Time
	case models.MeasurementCardio:
		t := "-"
		if v.Time != nil {
			t = *v.Time
		}
		return num(v.Distance) + " km in " + t
	}
	return "-"
}

func cmdSet(store *session.Store, rest string) {
	args := strings.Fields(rest)
	if len(args) < 3 {
		fmt.Println("Usage: set <ex#> <set#> <field> [value]")
		return
	}
	exNum, err1 := strconv.Atoi(args[0])
	setNum, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("Usage: set <ex#> <set#> <field> [value]")
		return
	}
	field := session.Field(args[2])
	value := ""
	if len(args) > 3 {
		value = args[3]
	}

	if field == session.FieldTime && value != "" {
		value = session.FormatTimeInput(value)
		if !session.ValidTimeInput(value) {
			fmt.Println("Time must look like MM:SS.")
			return
		}
	}

	if err := store.UpdateSetValue(exNum-1, setNum-1, field, value); err != nil {
		fmt.Println("Could not update set:", err)
		return
	}
	printActive(store.Active())
}

func cmdStatus(store *session.Store, rest string) {
	args := strings.Fields(rest)
	if len(args) != 2 {
		fmt.Println("Usage: status <ex#> <set#>")
		return
	}
	exNum, err1 := strconv.Atoi(args[0])
	setNum, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("Usage: status <ex#> <set#>")
		return
	}
	if err := store.CycleSetStatus(exNum-1, setNum-1); err != nil {
		fmt.Println("Could not update status:", err)
		return
	}
	printActive(store.Active())
}

func cmdFinish(ctx context.Context, store *session.Store) {
	rec, err := store.Finish(ctx)
	if err != nil {
		fmt.Println("Could not save workout:", err)
		return
	}
	fmt.Printf("Workout saved (%s).\n", rec.WorkoutID)
}

// cmdCreate parses "name :: exercise:type:sets, exercise:type:sets" into a
// template and persists it.
func cmdCreate(ctx context.Context, store *session.Store, rest string) {
	name, spec, ok := strings.Cut(rest, "::")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		fmt.Println("Usage: create <name> :: <exercise>:<type>:<sets>, ...")
		return
	}

	var exercises []models.ExerciseTemplate
	for _, part := range strings.Split(spec, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 3 {
			fmt.Printf("Bad exercise %q: want <name>:<type>:<sets>.\n", strings.TrimSpace(part))
			return
		}
		sets, err := strconv.Atoi(fields[2])
		if err != nil || sets < 1 {
			fmt.Printf("Bad set count %q.\n", fields[2])
			return
		}
		exercises = append(exercises, models.ExerciseTemplate{
			Name:            fields[0],
			MeasurementType: models.MeasurementType(fields[1]),
			Sets:            models.CountSets(sets),
		})
	}
	if len(exercises) == 0 {
		fmt.Println("A template needs at least one exercise.")
		return
	}

	created, err := store.CreateTemplate(ctx, models.Template{
		TemplateID: models.NewTemplateID(),
		Name:       name,
		Exercises:  exercises,
	})
	if err != nil {
		fmt.Println("Could not create template:", err)
		return
	}
	fmt.Printf("Template %q created.\n", created.Name)
}

func cmdDelete(ctx context.Context, store *session.Store, rest string) {
	templates := store.Templates()
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 || n > len(templates) {
		fmt.Println("Usage: delete <template#> (see 'templates')")
		return
	}
	tpl := templates[n-1]
	if err := store.DeleteTemplate(ctx, tpl.TemplateID); err != nil {
		fmt.Println("Could not delete template:", err)
		return
	}
	fmt.Printf("Template %q deleted.\n", tpl.Name)
}
