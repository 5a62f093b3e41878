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
	"github.com/eslsoft/ordasafn/internal/entity"
	"github.com/eslsoft/ordasafn/pkg/canonjson"
)

var showCmd = &cobra.Command{
	Use:   "show <identity>",
	Short: "显示数据库中的词条 (含合成词的派生变格表)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("初始化应用失败: %w", err)
		}
		defer cleanup()

		e, err := container.Entries.GetByIdentity(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("查询词条失败: %w", err)
		}
		if err := canonjson.Encode(cmd.OutOrStdout(), e.Document(entity.FullForm), canonjson.Pretty); err != nil {
			return fmt.Errorf("输出词条失败: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
