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

	"github.com/spf13/cobra"

	"github.com/eslsoft/ordasafn/internal/app"
	"github.com/eslsoft/ordasafn/internal/infrastructure/database"
	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "从词条 JSON 文件重建数据库",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("初始化应用失败: %w", err)
		}
		defer cleanup()

		if err := database.Migrate(ctx, container.Driver); err != nil {
			return fmt.Errorf("执行数据库迁移失败: %w", err)
		}

		progress := newCLIProgress(cmd.ErrOrStderr())
		report, err := container.Importer.Import(ctx, corpus.WithProgressReporter(progress))
		printReport(cmd, "导入", report)
		return runError("导入", report, err)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
