package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

var characterInput domain.CharacterInput

var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"char"},
	Short:   "Manage character definitions",
}

var characterAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a character definition",
	Long: `Creates a character definition. The behavior-relevant fields (name,
role, personality, instructions, knowledge, voice) are fingerprinted so
later evaluations can detect that the definition changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCharacterAdd,
}

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your characters",
	Args:  cobra.NoArgs,
	RunE:  runCharacterList,
}

var characterShowCmd = &cobra.Command{
	Use:   "show [character-id]",
	Short: "Show a character definition",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterShow,
}

var characterHashCmd = &cobra.Command{
	Use:   "hash [character-id]",
	Short: "Print the character's definition fingerprint",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterHash,
}

var characterRemoveCmd = &cobra.Command{
	Use:   "remove [character-id]",
	Short: "Remove a character",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterRemove,
}

func init() {
	flags := characterAddCmd.Flags()
	flags.StringVar(&characterInput.Role, "role", "", "character's role in the story")
	flags.StringVar(&characterInput.Personality, "personality", "", "temperament and mannerisms")
	flags.StringVar(&characterInput.Instructions, "instructions", "", "behavioral directives")
	flags.StringArrayVar(&characterInput.Knowledge, "knowledge", nil, "fact the character knows (repeatable)")
	flags.StringVar(&characterInput.Voice, "voice", "", "speech style and register")
	flags.StringVar(&characterInput.BookID, "book", "", "grounding book ID")

	characterCmd.AddCommand(characterAddCmd)
	characterCmd.AddCommand(characterListCmd)
	characterCmd.AddCommand(characterShowCmd)
	characterCmd.AddCommand(characterHashCmd)
	characterCmd.AddCommand(characterRemoveCmd)
	rootCmd.AddCommand(characterCmd)
}

func runCharacterAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	in := characterInput
	in.Name = args[0]

	def, err := libraryService.AddCharacter(cmd.Context(), ownerID, in)
	if err != nil {
		return fmt.Errorf("adding character: %w", err)
	}

	cmd.Printf("Added character %s (%s)\n", def.Name, def.ID)
	return nil
}

func runCharacterList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	defs, err := libraryService.ListCharacters(cmd.Context(), ownerID)
	if err != nil {
		return fmt.Errorf("listing characters: %w", err)
	}

	if len(defs) == 0 {
		cmd.Println("No characters defined.")
		return nil
	}

	for i := range defs {
		role := defs[i].Role
		if role == "" {
			role = "-"
		}
		cmd.Printf("  %s  %s (%s)\n", defs[i].ID, defs[i].Name, role)
	}
	return nil
}

func runCharacterShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	def, err := libraryService.GetCharacter(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting character: %w", err)
	}

	cmd.Printf("Name:         %s\n", def.Name)
	cmd.Printf("ID:           %s\n", def.ID)
	if def.Role != "" {
		cmd.Printf("Role:         %s\n", def.Role)
	}
	if def.Personality != "" {
		cmd.Printf("Personality:  %s\n", def.Personality)
	}
	if def.Instructions != "" {
		cmd.Printf("Instructions: %s\n", def.Instructions)
	}
	if def.Voice != "" {
		cmd.Printf("Voice:        %s\n", def.Voice)
	}
	if len(def.Knowledge) > 0 {
		cmd.Printf("Knowledge:    %s\n", strings.Join(def.Knowledge, "; "))
	}
	if def.BookID != "" {
		cmd.Printf("Book:         %s\n", def.BookID)
	}
	return nil
}

func runCharacterHash(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	hash, err := libraryService.DefinitionHash(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("hashing definition: %w", err)
	}

	cmd.Println(hash)
	return nil
}

func runCharacterRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RemoveCharacter(cmd.Context(), ownerID, args[0]); err != nil {
		return fmt.Errorf("removing character: %w", err)
	}

	cmd.Printf("Removed character %s\n", args[0])
	return nil
}
