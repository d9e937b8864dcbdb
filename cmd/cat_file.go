package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/objects"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var catFileCmd = &cobra.Command{
	Use:   constants.CatFileCmdName + " <hash>",
	Short: "Print the content, type or size of a stored object",
	Long: `Read an object from the objects folder, decode it and print it.
Blobs are printed verbatim, trees as a table and commits in their canonical text form.

Examples:
  # Print an object
  gitobj cat-file b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0

  # Print only its type or payload size
  gitobj cat-file -t b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0
  gitobj cat-file -s b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0

  # Print it as YAML
  gitobj cat-file --format yaml b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0`,
	SilenceUsage: true,
	Args:         exactArgs(1, "hash"),
	RunE:         runCatFile,
}

var (
	typeFlag   bool
	sizeFlag   bool
	formatFlag string
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&typeFlag, "type", "t", false, "Print only the object type")
	catFileCmd.Flags().BoolVarP(&sizeFlag, "size", "s", false, "Print only the object payload size")
	catFileCmd.Flags().StringVar(&formatFlag, "format", formatText, "Output format: text, json or yaml")
	catFileCmd.MarkFlagsMutuallyExclusive("type", "size")
}

// runCatFile reads the object named by args[0] and prints it in the selected form.
func runCatFile(cmd *cobra.Command, args []string) error {
	switch formatFlag {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported format %q (expected %s, %s or %s)", formatFlag, formatText, formatJSON, formatYAML)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if typeFlag || sizeFlag {
		objType, payload, err := store.ReadRaw(args[0])
		if err != nil {
			return err
		}
		if typeFlag {
			fmt.Fprintln(out, objType)
		} else {
			fmt.Fprintln(out, len(payload))
		}
		return nil
	}

	obj, err := store.Read(args[0])
	if err != nil {
		return err
	}

	switch formatFlag {
	case formatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newObjectView(obj))
	case formatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(newObjectView(obj)); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return printObject(out, obj)
	}
}

// printObject writes the human-readable representation of obj.
func printObject(out io.Writer, obj objects.Object) error {
	switch o := obj.(type) {
	case *objects.Blob:
		_, err := out.Write(o.Content())
		return err
	case *objects.Tree:
		printTree(out, o)
		return nil
	default:
		_, err := io.WriteString(out, obj.String())
		return err
	}
}

func printTree(out io.Writer, tree *objects.Tree) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Mode", "Type", "Hash", "Name"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, entry := range tree.Entries() {
		table.Append([]string{
			fmt.Sprintf("%06d", entry.Mode),
			string(entry.Type()),
			entry.Hash.String(),
			entry.Name,
		})
	}

	table.Render()
}

// objectView is the structured form printed by --format json and yaml.
type objectView struct {
	Hash string       `json:"hash" yaml:"hash"`
	Type objects.Type `json:"type" yaml:"type"`
	Size int          `json:"size" yaml:"size"`

	// Blob
	Content       *string `json:"content,omitempty" yaml:"content,omitempty"`
	ContentBase64 string  `json:"content_base64,omitempty" yaml:"content_base64,omitempty"`

	// Tree
	Entries []entryView `json:"entries,omitempty" yaml:"entries,omitempty"`

	// Commit
	Tree      string       `json:"tree,omitempty" yaml:"tree,omitempty"`
	Parents   []string     `json:"parents,omitempty" yaml:"parents,omitempty"`
	Author    string       `json:"author,omitempty" yaml:"author,omitempty"`
	Committer string       `json:"committer,omitempty" yaml:"committer,omitempty"`
	Headers   []headerView `json:"headers,omitempty" yaml:"headers,omitempty"`
	Message   *string      `json:"message,omitempty" yaml:"message,omitempty"`
}

type entryView struct {
	Mode string       `json:"mode" yaml:"mode"`
	Type objects.Type `json:"type" yaml:"type"`
	Hash string       `json:"hash" yaml:"hash"`
	Name string       `json:"name" yaml:"name"`
}

type headerView struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func newObjectView(obj objects.Object) objectView {
	view := objectView{
		Hash: obj.Hash().String(),
		Type: obj.Type(),
		Size: len(obj.Content()),
	}

	switch o := obj.(type) {
	case *objects.Blob:
		content := o.Content()
		if utf8.Valid(content) {
			text := string(content)
			view.Content = &text
		} else {
			view.ContentBase64 = base64.StdEncoding.EncodeToString(content)
		}
	case *objects.Tree:
		view.Entries = make([]entryView, 0, o.Len())
		for _, entry := range o.Entries() {
			view.Entries = append(view.Entries, entryView{
				Mode: entry.Mode.String(),
				Type: entry.Type(),
				Hash: entry.Hash.String(),
				Name: entry.Name,
			})
		}
	case *objects.Commit:
		view.Tree = o.Tree().String()
		for _, parent := range o.Parents() {
			view.Parents = append(view.Parents, parent.String())
		}
		view.Author = o.Author()
		view.Committer = o.Committer()
		for _, header := range o.ExtraHeaders() {
			view.Headers = append(view.Headers, headerView{Key: header.Key, Value: header.Value})
		}
		message := o.Message()
		view.Message = &message
	}

	return view
}
