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

	"github.com/eslsoft/ordasafn/internal/adapter/filestore"
	"github.com/eslsoft/ordasafn/internal/infrastructure/config"
	"github.com/eslsoft/ordasafn/internal/infrastructure/logging"
	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

// verifyCmd checks the files alone; it never opens the database.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "校验词条文件的往返一致性与合成词解析",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		logger, err := logging.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("创建日志失败: %w", err)
		}
		root, err := cfg.DataRoot()
		if err != nil {
			return fmt.Errorf("解析词条目录失败: %w", err)
		}

		verifier := corpus.NewVerifier(filestore.NewFileStore(root, logger), logger)
		progress := newCLIProgress(cmd.ErrOrStderr())
		report, err := verifier.Verify(cmd.Context(), corpus.WithProgressReporter(progress))
		if report != nil {
			cmd.Printf("校验完成: 检查 %d 个文件, 失败 %d\n", report.Checked, report.Failed())
		}
		return runError("校验", report, err)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
