package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "storage-gateway/docs/swagger"

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"
)

var openapiOut string

// openapiCmd exports the registered API document
var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Write the OpenAPI document to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fmt.Errorf("read api document: %w", err)
		}

		var out bytes.Buffer
		if err := json.Indent(&out, []byte(doc), "", "  "); err != nil {
			return fmt.Errorf("format api document: %w", err)
		}
		out.WriteByte('\n')

		if err := os.MkdirAll(filepath.Dir(openapiOut), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(openapiOut, out.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), openapiOut)
		return nil
	},
}

func init() {
	openapiCmd.Flags().StringVarP(&openapiOut, "out", "o", filepath.Join("docs", "openapi.json"), "output file")
	RootCmd.AddCommand(openapiCmd)
}
