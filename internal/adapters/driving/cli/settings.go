package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

var (
	settingsExtra bool
	settingsOff   bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage merge and mapping settings",
	Long: `View and configure merge priorities, recognize-empty fields, the column
mapping threshold and the minimum match confidence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsPriorityCmd = &cobra.Command{
	Use:   "priority <field> <new|existing>",
	Short: "Set the merge priority of a field",
	Long: `Set which state wins when both carry a value for a field.

Priorities:
  new      - Favor New: the incoming state wins (default)
  existing - Favor Existing: the stored state wins

Use --extra to set the priority of an extra-data key.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsPriority,
}

var settingsRecognizeEmptyCmd = &cobra.Command{
	Use:   "recognize-empty <field>",
	Short: "Let a blank value win a merge for a field",
	Long: `Normally a blank value never overwrites a populated one. Fields marked
recognize-empty let a blank from the winning side clear the other value.

Use --extra for an extra-data key and --off to remove the mark.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsRecognizeEmpty,
}

var settingsIgnoreProtectionCmd = &cobra.Command{
	Use:   "ignore-protection <on|off>",
	Short: "Make the new state win every merge conflict",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsIgnoreProtection,
}

var settingsThresholdCmd = &cobra.Command{
	Use:   "threshold <0-100>",
	Short: "Set the fuzzy score a column match must exceed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsThreshold,
}

var settingsConfidenceCmd = &cobra.Command{
	Use:   "min-confidence <0-1>",
	Short: "Set the lowest confidence reported as a match",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsConfidence,
}

func init() {
	settingsPriorityCmd.Flags().BoolVar(&settingsExtra, "extra", false, "field is an extra-data key")
	settingsRecognizeEmptyCmd.Flags().BoolVar(&settingsExtra, "extra", false, "field is an extra-data key")
	settingsRecognizeEmptyCmd.Flags().BoolVar(&settingsOff, "off", false, "remove the field instead of adding it")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPriorityCmd)
	settingsCmd.AddCommand(settingsRecognizeEmptyCmd)
	settingsCmd.AddCommand(settingsIgnoreProtectionCmd)
	settingsCmd.AddCommand(settingsThresholdCmd)
	settingsCmd.AddCommand(settingsConfidenceCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd, settingsJSON{
			Priorities:              settings.Merge.Priorities,
			RecognizeEmpty:          domain.SortedKeys(settings.Merge.RecognizeEmpty.Fields),
			RecognizeEmptyExtraData: domain.SortedKeys(settings.Merge.RecognizeEmpty.ExtraData),
			IgnoreMergeProtection:   settings.Merge.IgnoreMergeProtection,
			MappingThreshold:        settings.Mapping.Threshold,
			MatchMinConfidence:      settings.Match.MinConfidence,
		})
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Merge]")
	printPriorities(cmd, "Priorities", settings.Merge.Priorities.Fields)
	printPriorities(cmd, "Extra data priorities", settings.Merge.Priorities.ExtraData)
	cmd.Printf("  Recognize empty: %s\n", joinOrNone(domain.SortedKeys(settings.Merge.RecognizeEmpty.Fields)))
	cmd.Printf("  Recognize empty (extra data): %s\n", joinOrNone(domain.SortedKeys(settings.Merge.RecognizeEmpty.ExtraData)))
	cmd.Printf("  Ignore merge protection: %s\n", yesNo(settings.Merge.IgnoreMergeProtection))
	cmd.Println()

	cmd.Println("[Mapping]")
	cmd.Printf("  Threshold: %d\n", settings.Mapping.Threshold)
	cmd.Println()

	cmd.Println("[Match]")
	cmd.Printf("  Minimum confidence: %.2f\n", settings.Match.MinConfidence)

	return nil
}

// settingsJSON is the JSON shape of settings show.
type settingsJSON struct {
	Priorities              domain.PriorityConfig `json:"priorities"`
	RecognizeEmpty          []string              `json:"recognize_empty"`
	RecognizeEmptyExtraData []string              `json:"recognize_empty_extra_data"`
	IgnoreMergeProtection   bool                  `json:"ignore_merge_protection"`
	MappingThreshold        int                   `json:"mapping_threshold"`
	MatchMinConfidence      float64               `json:"match_min_confidence"`
}

func printPriorities(cmd *cobra.Command, label string, priorities map[string]domain.MergePriority) {
	if len(priorities) == 0 {
		cmd.Printf("  %s: (all Favor New)\n", label)
		return
	}
	cmd.Printf("  %s:\n", label)
	for _, name := range domain.SortedKeys(priorities) {
		cmd.Printf("    %s: %s\n", name, priorities[name])
	}
}

func runSettingsPriority(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	priority, err := parsePriority(args[1])
	if err != nil {
		return err
	}

	if err := settingsService.SetPriority(args[0], settingsExtra, priority); err != nil {
		return fmt.Errorf("failed to set priority: %w", err)
	}

	cmd.Printf("%s now uses %s\n", fieldLabel(args[0], settingsExtra), priority)
	return nil
}

func runSettingsRecognizeEmpty(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.SetRecognizeEmpty(args[0], settingsExtra, !settingsOff); err != nil {
		return fmt.Errorf("failed to set recognize empty: %w", err)
	}

	if settingsOff {
		cmd.Printf("%s no longer recognizes empty values\n", fieldLabel(args[0], settingsExtra))
	} else {
		cmd.Printf("%s now recognizes empty values\n", fieldLabel(args[0], settingsExtra))
	}
	return nil
}

func runSettingsIgnoreProtection(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	if err := settingsService.SetIgnoreMergeProtection(on); err != nil {
		return fmt.Errorf("failed to set merge protection: %w", err)
	}

	cmd.Printf("Ignore merge protection: %s\n", yesNo(on))
	return nil
}

func runSettingsThreshold(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	threshold, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: threshold %q is not a number", domain.ErrInvalidInput, args[0])
	}

	if err := settingsService.SetMappingThreshold(threshold); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}

	cmd.Printf("Mapping threshold set to %d\n", threshold)
	return nil
}

func runSettingsConfidence(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	confidence, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: confidence %q is not a number", domain.ErrInvalidInput, args[0])
	}

	if err := settingsService.SetMinConfidence(confidence); err != nil {
		return fmt.Errorf("failed to set minimum confidence: %w", err)
	}

	cmd.Printf("Minimum match confidence set to %.2f\n", confidence)
	return nil
}

// parsePriority accepts "new", "existing" or a full priority name.
func parsePriority(s string) (domain.MergePriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new":
		return domain.FavorNew, nil
	case "existing":
		return domain.FavorExisting, nil
	}
	return domain.ParseMergePriority(s)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, s)
	}
}

func fieldLabel(name string, extra bool) string {
	if extra {
		return "extra_data." + name
	}
	return name
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
