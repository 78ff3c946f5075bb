package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/ports/secondary"
	"github.com/example/sentinel/internal/wire"
)

// DatasetCmd returns the dataset command.
func DatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage dataset metadata",
		Long:  `Register and list dataset metadata entries. The catalog is append-only.`,
	}

	cmd.AddCommand(datasetAddCmd())
	cmd.AddCommand(datasetListCmd())

	return cmd
}

func datasetAddCmd() *cobra.Command {
	var (
		category    string
		source      string
		lastUpdated string
		recordCount int64
		fileSizeMB  float64
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a dataset",
		Long: `Register a dataset metadata entry.

Examples:
  sentinel dataset add "firewall-logs" --category Security --records 120000 --size 34.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.Datasets().Create(cmd.Context(), &secondary.DatasetRecord{
				DatasetName: args[0],
				Category:    category,
				Source:      source,
				LastUpdated: lastUpdated,
				RecordCount: recordCount,
				FileSizeMB:  fileSizeMB,
			})
			if err != nil {
				return fmt.Errorf("failed to add dataset: %w", err)
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Registered dataset %s\n", green("✓"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Dataset category")
	cmd.Flags().StringVar(&source, "source", "", "Where the data comes from")
	cmd.Flags().StringVar(&lastUpdated, "updated", "", "Last update date")
	cmd.Flags().Int64Var(&recordCount, "records", 0, "Number of records")
	cmd.Flags().Float64Var(&fileSizeMB, "size", 0, "File size in MB")

	return cmd
}

func datasetListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered datasets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets, err := wire.Datasets().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			if len(datasets) == 0 {
				fmt.Println("No datasets found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSOURCE\tRECORDS\tSIZE (MB)")
			for _, ds := range datasets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.3f\n",
					ds.ID, ds.DatasetName, ds.Category, ds.Source, ds.RecordCount, ds.FileSizeMB)
			}
			return w.Flush()
		},
	}

	return cmd
}
