/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/ordasafn/internal/app"
	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

const (
	exportSinceKey  = "export.since"
	exportFilterKey = "export.filter"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "将数据库中的词条写回 JSON 文件",
	Long: `按 id 升序导出词条，仅在内容变化时重写文件。
--filter 接受 CEL 表达式，例如: category == "noun" && lemma.startsWith("hús")`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		since, err := parseSince(viper.GetString(exportSinceKey))
		if err != nil {
			return fmt.Errorf("解析 --since 失败: %w", err)
		}
		query := corpus.ExportQuery{
			Since:  since,
			Filter: strings.TrimSpace(viper.GetString(exportFilterKey)),
		}

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("初始化应用失败: %w", err)
		}
		defer cleanup()

		progress := newCLIProgress(cmd.ErrOrStderr())
		report, err := container.Exporter.Export(ctx, query, corpus.WithProgressReporter(progress))
		printReport(cmd, "导出", report)
		return runError("导出", report, err)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("since", "", "仅导出此时间之后修改的词条 (RFC3339 或 2006-01-02)")
	exportCmd.Flags().String("filter", "", "CEL 过滤表达式")

	bindFlagToViper(exportSinceKey, exportCmd.Flags().Lookup("since"))
	bindFlagToViper(exportFilterKey, exportCmd.Flags().Lookup("filter"))
}

var sinceLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// parseSince reads an instant; values without a zone are taken as UTC.
func parseSince(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range sinceLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("无法识别的时间 %q", value)
}
