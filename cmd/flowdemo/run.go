package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/syncflow/blueprint"
	"github.com/kbukum/syncflow/flow"
	"github.com/kbukum/syncflow/logger"
)

// blueprintFlags selects a definition by file or by name.
type blueprintFlags struct {
	file string
	dirs []string
}

func (b *blueprintFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&b.file, "file", "f", "", "Path to a blueprint YAML file")
	cmd.Flags().StringSliceVar(&b.dirs, "dir", nil, "Directories to search for <name>.yaml (default: demo.blueprint_dirs)")
}

func (b *blueprintFlags) load(a *app, args []string) (*blueprint.Definition, error) {
	switch {
	case b.file != "" && len(args) > 0:
		return nil, fmt.Errorf("give either --file or a blueprint name, not both")
	case b.file != "":
		return blueprint.LoadFile(b.file)
	case len(args) == 1:
		dirs := b.dirs
		if len(dirs) == 0 {
			dirs = a.cfg.Demo.BlueprintDirs
		}
		return blueprint.NewFileLoader(dirs...).Load(args[0])
	default:
		return nil, fmt.Errorf("a blueprint name or --file is required")
	}
}

func newRunCmd(a *app) *cobra.Command {
	var (
		bp       blueprintFlags
		from, to int
		values   []int
	)
	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Build a flow from a blueprint and send integers through it",
		Long: "Builds a flow from a blueprint over the builtin integer capabilities\n" +
			"(" + strings.Join(builtinRegistry(nil).Names(), ", ") + ")\n" +
			"and sends --values, or the range --from..--to, through it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := bp.load(a, args)
			if err != nil {
				return err
			}

			defaultPolicy(def.Steps, a.cfg.Demo.UnknownLabels)

			f, err := blueprint.Build(def, builtinRegistry(cmd.OutOrStdout()), a.flowOptions(def.Name)...)
			if err != nil {
				return err
			}
			f.Freeze()
			a.log.Debug("blueprint built", map[string]interface{}{"flow_name": f.Name(), "nodes": f.Len()})

			start := time.Now()
			if len(values) > 0 {
				err = f.SendValues(cmd.Context(), values...)
			} else {
				err = f.SendMany(cmd.Context(), flow.Range(from, to))
			}
			a.log.Debug("values sent", logger.DurationFields("send", time.Since(start)))
			return err
		},
	}
	bp.register(cmd)
	cmd.Flags().IntVar(&from, "from", 1, "First value of the range")
	cmd.Flags().IntVar(&to, "to", 20, "Last value of the range")
	cmd.Flags().IntSliceVar(&values, "values", nil, "Explicit values to send instead of a range")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var (
		bp       blueprintFlags
		showYAML bool
	)
	cmd := &cobra.Command{
		Use:   "describe [name]",
		Short: "Print the tree a blueprint builds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := bp.load(a, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showYAML {
				data, err := blueprint.Marshal(def)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			f, err := blueprint.Build(def, builtinRegistry(out))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%d nodes)\n%s", f.Name(), f.Len(), f.Describe())
			return nil
		},
	}
	bp.register(cmd)
	cmd.Flags().BoolVar(&showYAML, "yaml", false, "Print the normalized definition instead of the tree")
	return cmd
}

// defaultPolicy sets policy on every segregate step that leaves it unset.
func defaultPolicy(steps []blueprint.Step, policy string) {
	for i := range steps {
		s := &steps[i]
		if s.Segregate != "" && s.UnknownLabels == "" {
			s.UnknownLabels = policy
		}
		for _, branch := range s.Branches {
			defaultPolicy(branch, policy)
		}
		for _, chain := range s.Classes {
			defaultPolicy(chain, policy)
		}
	}
}
