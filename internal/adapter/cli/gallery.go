package cli

import (
	"github.com/couchcryptid/precip-summary-service/internal/adapter/chart"
	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery [id]",
	Short: "Print the image path for a gallery id, or list all ids",
	Long: `gallery prints the image path for a gallery id, or every id and path when
called without one. Use "gallery render" to draw the images.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, id := range domain.GalleryIDs() {
				cmd.Printf("%s\t%s\n", id, domain.GalleryImage(id))
			}
			return
		}
		cmd.Println(domain.GalleryImage(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)
}

var (
	galleryRenderInput string
	galleryRenderOut   string
)

var galleryRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every gallery image from the input into a directory",
	Args:  cobra.NoArgs,
	RunE:  runGalleryRender,
}

func init() {
	galleryRenderCmd.Flags().StringVarP(&galleryRenderInput, "input", "i", "", "CSV path or http(s) URL")
	galleryRenderCmd.Flags().StringVarP(&galleryRenderOut, "out", "o", "output", "directory for the PNG files")
	galleryCmd.AddCommand(galleryRenderCmd)
}

func runGalleryRender(cmd *cobra.Command, _ []string) error {
	a, yr, err := analyzeInput(cmd, galleryRenderInput)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	gallery := chart.NewGallery(chart.NewRenderer(logger), galleryRenderOut, logger)
	written, err := gallery.WriteAll(&domain.Report{Source: galleryRenderInput, YearRange: yr, Analysis: a})
	if err != nil {
		return err
	}
	for _, path := range written {
		cmd.Println("wrote " + path)
	}
	return nil
}
