package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/audio"
	"github.com/example/guitarcoach/internal/catalog"
	"github.com/example/guitarcoach/internal/excel"
	"github.com/example/guitarcoach/internal/practice"
	"github.com/example/guitarcoach/pkg/models"
)

// ErrUsage is returned for unknown commands and malformed arguments
var ErrUsage = errors.New("usage")

type command struct {
	name string
	args string
	help string
	run  func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"chord", "NAME", "play a chord", (*App).cmdChord},
	{"note", "STRING FRET", "play one fretted note, string 0 is low E", (*App).cmdNote},
	{"scale", "NAME [-desc|-arp]", "play a scale up and down, descending only, or as an arpeggio", (*App).cmdScale},
	{"strum", "PATTERN [-tempo BPM] [-duration D]", "loop a strumming pattern", (*App).cmdStrum},
	{"metronome", "[-bpm BPM|-preset NAME] [-sig 4/4] [-volume V] [-duration D]", "run the metronome", (*App).cmdMetronome},
	{"list", "[chords|scales|strums|exercises|presets|signatures]", "list practice content", (*App).cmdList},
	{"practice", "-category C -item ID -seconds N [-completed] [-score S] [-notes TEXT]", "record a finished practice", (*App).cmdPractice},
	{"progress", "[-category C]", "show per-item progress", (*App).cmdProgress},
	{"stats", "", "show totals, streak and level", (*App).cmdStats},
	{"history", "[-days N]", "show recent practice sessions", (*App).cmdHistory},
	{"export", "FILE.xlsx [-days N]", "export progress and sessions to a workbook", (*App).cmdExport},
	{"import", "FILE [-sheet NAME]", "import sessions from .xlsx or .csv", (*App).cmdImport},
	{"midi", "KIND NAME FILE.mid", "write a chord, scale, arpeggio, note, strum or click as MIDI", (*App).cmdMIDI},
	{"wav", "KIND NAME FILE.wav", "render a chord, scale, arpeggio, note, strum or click to WAV", (*App).cmdWAV},
	{"reset", "-yes", "delete all progress, sessions and statistics", (*App).cmdReset},
	{"remind", "[-once] [-summary]", "run the reminder scheduler until interrupted", (*App).cmdRemind},
}

// Usage prints the command summary
func Usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] COMMAND [ARGS]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.args)
		fmt.Fprintf(w, "             %s\n", c.help)
	}
}

// Run executes one command
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	name := args[0]
	if name == "help" {
		Usage(a.out)
		return nil
	}
	for _, c := range commands {
		if c.name != name {
			continue
		}
		a.log.Debug("Running command", zap.String("command", name), zap.Strings("args", args[1:]))
		err := c.run(a, ctx, args[1:])
		if errors.Is(err, audio.ErrAudioUnavailable) {
			fmt.Fprintln(a.out, "Audio is not available on this system.")
		}
		return err
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// parse accepts flags before, between and after positional arguments
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func expect(positional []string, n int, what string) error {
	if len(positional) != n {
		return fmt.Errorf("%w: expected %s", ErrUsage, what)
	}
	return nil
}

// play starts an event and blocks until it has finished or ctx is done
func (a *App) play(ctx context.Context, gen *audio.Generator, kind audio.Kind, params audio.Params) error {
	if err := gen.PlayTone(ctx, kind, params); err != nil {
		return err
	}
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for gen.IsPlaying() {
		select {
		case <-ctx.Done():
			gen.Stop()
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func (a *App) cmdChord(ctx context.Context, args []string) error {
	positional, err := parse(a.flags("chord"), args)
	if err != nil {
		return err
	}
	if err := expect(positional, 1, "a chord name"); err != nil {
		return err
	}
	kind, params, name, err := a.resolve(string(audio.KindChord), positional[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Playing %s\n", name)
	return a.play(ctx, a.chords, kind, params)
}

func (a *App) cmdNote(ctx context.Context, args []string) error {
	positional, err := parse(a.flags("note"), args)
	if err != nil {
		return err
	}
	if err := expect(positional, 2, "a string and a fret"); err != nil {
		return err
	}
	kind, params, name, err := a.resolve(string(audio.KindNote), positional[0]+":"+positional[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Playing %s\n", name)
	return a.play(ctx, a.chords, kind, params)
}

func (a *App) cmdScale(ctx context.Context, args []string) error {
	fs := a.flags("scale")
	desc := fs.Bool("desc", false, "play only the descending run")
	arp := fs.Bool("arp", false, "play as an arpeggio")
	octave := fs.Int("octave", 4, "starting octave")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := expect(positional, 1, "a scale name"); err != nil {
		return err
	}
	kind := string(audio.KindScale)
	if *arp {
		kind = string(audio.KindArpeggio)
	}
	k, params, name, err := a.resolve(kind, positional[0])
	if err != nil {
		return err
	}
	params.Octave = *octave
	params.Descending = *desc
	fmt.Fprintf(a.out, "Playing %s\n", name)
	return a.play(ctx, a.scales, k, params)
}

// runFor runs fn until ctx is done or, when d is positive, d has elapsed
func runFor(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	err := fn(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *App) cmdStrum(ctx context.Context, args []string) error {
	fs := a.flags("strum")
	tempo := fs.Int("tempo", 0, "beats per minute, defaults to the pattern's tempo")
	duration := fs.Duration("duration", 0, "stop after this long, 0 runs until interrupted")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := expect(positional, 1, "a strumming pattern"); err != nil {
		return err
	}
	pattern, ok := a.catalog.StrumPattern(positional[0])
	if !ok {
		return fmt.Errorf("unknown strumming pattern %q", positional[0])
	}
	if !a.strums.IsAvailable() {
		return audio.ErrAudioUnavailable
	}
	bpm := pattern.Tempo
	if *tempo > 0 {
		bpm = *tempo
	}

	fmt.Fprintf(a.out, "%s at %d BPM: %s\n", pattern.Name, bpm, strings.Join(displayStrokes(pattern.Pattern), " "))
	s := &audio.Strummer{
		Gen:     a.strums,
		Pattern: pattern.Pattern,
		Tempo:   bpm,
		Log:     a.log,
	}
	return runFor(ctx, *duration, s.Run)
}

func displayStrokes(pattern []string) []string {
	out := make([]string, len(pattern))
	for i, stroke := range pattern {
		if stroke == "" {
			stroke = "-"
		}
		out[i] = stroke
	}
	return out
}

func (a *App) cmdMetronome(ctx context.Context, args []string) error {
	fs := a.flags("metronome")
	bpm := fs.Int("bpm", a.cfg.Audio.DefaultTempo, "beats per minute")
	preset := fs.String("preset", "", "named tempo preset, overrides -bpm")
	sig := fs.String("sig", "4/4", "time signature")
	volume := fs.Float64("volume", a.cfg.Audio.MetronomeVolume, "click volume from 0 to 1")
	duration := fs.Duration("duration", 0, "stop after this long, 0 runs until interrupted")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := expect(positional, 0, "no arguments"); err != nil {
		return err
	}

	tempo := *bpm
	if *preset != "" {
		p, ok := a.catalog.TempoPreset(*preset)
		if !ok {
			return fmt.Errorf("unknown tempo preset %q", *preset)
		}
		tempo = p.BPM
	}
	if tempo < audio.MinTempo || tempo > audio.MaxTempo {
		return fmt.Errorf("%w: tempo must be between %d and %d BPM", ErrUsage, audio.MinTempo, audio.MaxTempo)
	}
	if *volume < 0 || *volume > 1 {
		return fmt.Errorf("%w: volume must be between 0 and 1", ErrUsage)
	}
	ts, ok := a.catalog.TimeSignature(*sig)
	if !ok {
		return fmt.Errorf("unknown time signature %q", *sig)
	}
	if !a.metronome.IsAvailable() {
		return audio.ErrAudioUnavailable
	}

	fmt.Fprintf(a.out, "%d BPM (%s), %s\n", tempo, catalog.TempoDescription(tempo), ts.Name)
	m := &audio.Metronome{
		Gen:    a.metronome,
		Tempo:  tempo,
		Beats:  ts.Beats,
		Volume: *volume,
		Log:    a.log,
	}
	return runFor(ctx, *duration, m.Run)
}

func (a *App) cmdList(_ context.Context, args []string) error {
	positional, err := parse(a.flags("list"), args)
	if err != nil {
		return err
	}
	what := "chords"
	if len(positional) > 0 {
		what = positional[0]
	}

	w := a.out
	switch what {
	case "chords":
		for _, c := range a.catalog.Chords {
			fmt.Fprintf(w, "%-14s %-16s %-8s %s\n", c.ID, c.Name, c.Group, c.Difficulty)
		}
	case "scales":
		for _, s := range a.catalog.Scales {
			fmt.Fprintf(w, "%-22s %-24s %s\n", s.ID, s.Name, strings.Join(s.Notes, " "))
		}
	case "strums":
		for _, p := range a.catalog.StrumPatterns {
			fmt.Fprintf(w, "%-14s %-22s %3d BPM  %s\n", p.ID, p.Name, p.Tempo, strings.Join(displayStrokes(p.Pattern), " "))
		}
	case "exercises":
		for _, e := range a.catalog.Exercises {
			fmt.Fprintf(w, "%-20s %-26s %2d min  %s\n", e.ID, e.Name, e.Duration, e.Description)
		}
	case "presets":
		for _, p := range a.catalog.TempoPresets {
			fmt.Fprintf(w, "%-12s %3d BPM  %s\n", p.Name, p.BPM, p.Description)
		}
	case "signatures":
		for _, ts := range a.catalog.TimeSignatures {
			fmt.Fprintf(w, "%-5s %s\n", ts.Name, ts.Description)
		}
	default:
		return fmt.Errorf("%w: unknown list %q", ErrUsage, what)
	}
	return nil
}

// itemName looks up the display name of a catalog item, falling back to its id
func (a *App) itemName(category models.Category, id string) string {
	switch category {
	case models.CategoryChords:
		if c, ok := a.catalog.Chord(id); ok {
			return c.Name
		}
	case models.CategoryScales:
		if s, ok := a.catalog.Scale(id); ok {
			return s.Name
		}
	case models.CategoryStrumming:
		if p, ok := a.catalog.StrumPattern(id); ok {
			return p.Name
		}
	case models.CategoryExercises:
		if e, ok := a.catalog.Exercise(id); ok {
			return e.Name
		}
	}
	return id
}

func (a *App) cmdPractice(ctx context.Context, args []string) error {
	fs := a.flags("practice")
	category := fs.String("category", "", "chords, scales, strumming, exercises or lessons")
	item := fs.String("item", "", "item id")
	seconds := fs.Int("seconds", 0, "time practised in seconds")
	completed := fs.Bool("completed", false, "mark the item as learned")
	score := fs.Int("score", -1, "exercise score from 0 to 100")
	difficulty := fs.String("difficulty", string(models.DifficultyBeginner), "Beginner, Intermediate or Advanced")
	notes := fs.String("notes", "", "free-form notes")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := expect(positional, 0, "flags only"); err != nil {
		return err
	}
	cat := models.Category(*category)
	if !cat.Valid() || *item == "" {
		return fmt.Errorf("%w: -category and -item are required", ErrUsage)
	}
	if *seconds < 0 {
		return fmt.Errorf("%w: -seconds can't be negative", ErrUsage)
	}
	if *score > 100 {
		return fmt.Errorf("%w: -score must be at most 100", ErrUsage)
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	rec := &models.UserProgress{
		Category:     cat,
		ItemID:       *item,
		ItemName:     a.itemName(cat, *item),
		Completed:    *completed,
		PracticeTime: *seconds,
		Difficulty:   models.Difficulty(*difficulty),
	}
	if *score >= 0 {
		rec.Score = score
	}
	var note *string
	if *notes != "" {
		rec.Notes = notes
		note = notes
	}
	if err := a.store.RecordPractice(ctx, rec, note); err != nil {
		return err
	}

	stats := a.store.GetStats(ctx)
	fmt.Fprintf(a.out, "Recorded %s of %s. Level %d, %d XP, %d day streak.\n",
		practice.FormatDuration(*seconds), rec.ItemName, stats.Level, stats.Experience, stats.CurrentStreak)
	return nil
}

func (a *App) cmdProgress(ctx context.Context, args []string) error {
	fs := a.flags("progress")
	category := fs.String("category", "", "limit to one category")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	cat := models.Category(*category)
	if cat != "" && !cat.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrUsage, cat)
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	progress := a.store.ListProgress(ctx, cat)
	if len(progress) == 0 {
		fmt.Fprintln(a.out, "No progress yet.")
		return nil
	}
	now := a.now().In(a.loc)
	for _, p := range progress {
		mark := " "
		if p.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %-10s %-24s %-8s %s\n",
			mark, p.Category, p.ItemName, practice.FormatDuration(p.PracticeTime), practice.RelativeDay(p.LastPracticed, now))
	}
	return nil
}

func (a *App) cmdStats(ctx context.Context, args []string) error {
	if _, err := parse(a.flags("stats"), args); err != nil {
		return err
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	s := a.store.GetStats(ctx)
	into, size := practice.NewLeveling().ToNextLevel(s.Experience)
	w := a.out
	fmt.Fprintf(w, "Level:          %d (%d/%d XP)\n", s.Level, into, size)
	fmt.Fprintf(w, "Practice time:  %s\n", practice.FormatDuration(s.TotalPracticeTime))
	fmt.Fprintf(w, "Current streak: %d days\n", s.CurrentStreak)
	fmt.Fprintf(w, "Longest streak: %d days\n", s.LongestStreak)
	fmt.Fprintf(w, "Chords learned: %d\n", s.ChordsLearned)
	fmt.Fprintf(w, "Scales learned: %d\n", s.ScalesLearned)
	fmt.Fprintf(w, "Exercises done: %d\n", s.ExercisesCompleted)
	fmt.Fprintf(w, "Lessons done:   %d\n", s.LessonsCompleted)
	if s.LastPracticeDate != nil {
		fmt.Fprintf(w, "Last practice:  %s\n", practice.RelativeDay(*s.LastPracticeDate, a.now().In(a.loc)))
	}
	return nil
}

func (a *App) cmdHistory(ctx context.Context, args []string) error {
	fs := a.flags("history")
	days := fs.Int("days", a.cfg.Practice.HistoryDays, "trailing window in days")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	sessions := a.store.ListHistory(ctx, *days)
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No practice sessions yet.")
		return nil
	}
	now := a.now().In(a.loc)
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%-12s %-10s %-24s %s\n",
			practice.RelativeDay(s.Date, now), s.Category, s.ItemName, practice.FormatDuration(s.Duration))
	}

	summary := practice.Summarize(sessions, a.store.ListProgress(ctx, ""), a.loc)
	fmt.Fprintf(a.out, "\n%d sessions, %s total over %d practice days\n",
		summary.Sessions, practice.FormatDuration(summary.Total), len(summary.Days))
	return nil
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	fs := a.flags("export")
	days := fs.Int("days", 365, "sessions from this many trailing days")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := expect(positional, 1, "an output file"); err != nil {
		return err
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	data := excel.ExportData{
		Progress: a.store.ListProgress(ctx, ""),
		Sessions: a.store.ListHistory(ctx, *days),
		Stats:    a.store.GetStats(ctx),
		Location: a.loc,
	}
	if err := excel.ExportToFile(positional[0], data); err != nil {
		return err
	}
	a.log.Info("Exported practice data",
		zap.String("path", positional[0]),
		zap.Int("progress", len(data.Progress)),
		zap.Int("sessions", len(data.Sessions)))
	fmt.Fprintf(a.out, "Exported %d items and %d sessions to %s\n", len(data.Progress), len(data.Sessions), positional[0])
	return nil
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	fs := a.flags("import")
	sheet := fs.String("sheet", excel.SheetSessions, "sheet to read from a workbook")
	positional, err := parse(fs, args)
	if err != nil {
		return err
	}
	if err := expect(positional, 1, "an input file"); err != nil {
		return err
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	cfg := excel.DefaultImportConfig()
	cfg.FilePath = positional[0]
	cfg.SheetName = *sheet
	cfg.Location = a.loc
	result, err := excel.ImportSessions(ctx, cfg, a.store)
	if err != nil {
		return err
	}
	a.log.Info("Imported practice sessions",
		zap.String("path", positional[0]),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	fmt.Fprintf(a.out, "Imported %d of %d rows (%d skipped)\n", result.Created, result.TotalProcessed, result.Skipped)
	for _, e := range result.Errors {
		fmt.Fprintf(a.out, "  %s\n", e)
	}
	return nil
}

// resolve maps a kind and a catalog name to generator params. Notes are named
// "STRING:FRET", strums "down" or "up", clicks "accent" or "regular".
func (a *App) resolve(kind, name string) (audio.Kind, audio.Params, string, error) {
	switch audio.Kind(kind) {
	case audio.KindChord:
		c, ok := a.catalog.Chord(name)
		if !ok {
			return "", audio.Params{}, "", fmt.Errorf("unknown chord %q", name)
		}
		return audio.KindChord, audio.Params{Frets: c.Fingers}, c.Name, nil
	case audio.KindScale, audio.KindArpeggio:
		s, ok := a.catalog.Scale(name)
		if !ok {
			return "", audio.Params{}, "", fmt.Errorf("unknown scale %q", name)
		}
		return audio.Kind(kind), audio.Params{Notes: s.Notes}, s.Name, nil
	case audio.KindNote:
		var str, fret int
		if _, err := fmt.Sscanf(name, "%d:%d", &str, &fret); err != nil {
			return "", audio.Params{}, "", fmt.Errorf("%w: note must be STRING:FRET", ErrUsage)
		}
		return audio.KindNote, audio.Params{String: str, Fret: fret}, fmt.Sprintf("string %d fret %d", str, fret), nil
	case audio.KindStrum:
		switch name {
		case "down", "D":
			return audio.KindStrum, audio.Params{}, "downstroke", nil
		case "up", "U":
			return audio.KindStrum, audio.Params{Upstroke: true}, "upstroke", nil
		}
		return "", audio.Params{}, "", fmt.Errorf("%w: strum must be down or up", ErrUsage)
	case audio.KindClick:
		switch name {
		case "accent":
			return audio.KindClick, audio.Params{Accent: true, Volume: a.cfg.Audio.MetronomeVolume}, "accented click", nil
		case "regular":
			return audio.KindClick, audio.Params{Volume: a.cfg.Audio.MetronomeVolume}, "click", nil
		}
		return "", audio.Params{}, "", fmt.Errorf("%w: click must be accent or regular", ErrUsage)
	}
	return "", audio.Params{}, "", fmt.Errorf("%w: unknown kind %q", ErrUsage, kind)
}

// exportEvent resolves and builds the event for the midi and wav commands
func (a *App) exportEvent(name string, args []string) (audio.Event, string, string, error) {
	positional, err := parse(a.flags(name), args)
	if err != nil {
		return audio.Event{}, "", "", err
	}
	if err := expect(positional, 3, "KIND NAME FILE"); err != nil {
		return audio.Event{}, "", "", err
	}
	kind, params, title, err := a.resolve(positional[0], positional[1])
	if err != nil {
		return audio.Event{}, "", "", err
	}
	ev, err := audio.BuildEvent(kind, params)
	if err != nil {
		return audio.Event{}, "", "", err
	}
	return ev, title, positional[2], nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return write(f)
}

func (a *App) cmdMIDI(_ context.Context, args []string) error {
	ev, title, path, err := a.exportEvent("midi", args)
	if err != nil {
		return err
	}
	err = writeFile(path, func(w io.Writer) error {
		return audio.WriteMIDI(w, ev, a.cfg.Audio.DefaultTempo, title)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s to %s\n", title, path)
	return nil
}

func (a *App) cmdWAV(_ context.Context, args []string) error {
	ev, title, path, err := a.exportEvent("wav", args)
	if err != nil {
		return err
	}
	rate := a.cfg.Audio.SampleRate
	samples := audio.Render(ev, rate)
	err = writeFile(path, func(w io.Writer) error {
		return audio.WriteWAV(w, samples, rate)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s to %s\n", title, path)
	return nil
}

func (a *App) cmdReset(ctx context.Context, args []string) error {
	fs := a.flags("reset")
	yes := fs.Bool("yes", false, "confirm deleting everything")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if !*yes {
		fmt.Fprintln(a.out, "This deletes all progress. Run again with -yes to confirm.")
		return nil
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}
	if err := a.store.ClearAll(ctx); err != nil {
		return err
	}
	a.log.Info("All progress cleared")
	fmt.Fprintln(a.out, "All progress cleared.")
	return nil
}

func (a *App) cmdRemind(ctx context.Context, args []string) error {
	fs := a.flags("remind")
	once := fs.Bool("once", false, "check once and exit")
	summary := fs.Bool("summary", false, "with -once, also send the weekly summary")
	if _, err := parse(fs, args); err != nil {
		return err
	}
	if !a.cfg.Reminder.Enabled {
		fmt.Fprintln(a.out, "Reminders are disabled.")
		return nil
	}
	if err := a.waitStore(ctx); err != nil {
		return err
	}

	s := a.newScheduler()
	if *once {
		sent, err := s.CheckReminder(ctx)
		if err != nil {
			return err
		}
		if sent {
			fmt.Fprintln(a.out, "Reminder sent.")
		} else {
			fmt.Fprintln(a.out, "No reminder needed.")
		}
		if *summary {
			return s.SendWeeklySummary(ctx)
		}
		return nil
	}

	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Stop()
	fmt.Fprintf(a.out, "Reminder scheduled daily at %s. Press Ctrl+C to stop.\n", a.cfg.Reminder.Time)
	<-ctx.Done()
	return nil
}
