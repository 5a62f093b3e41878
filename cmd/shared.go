package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/ordasafn/internal/usecase/corpus"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func printReport(cmd *cobra.Command, action string, report *corpus.Report) {
	if report == nil {
		return
	}
	cmd.Printf("%s完成: 新增 %d, 更新 %d, 未变 %d, 失败 %d\n",
		action, report.Created, report.Updated, report.Unchanged, report.Failed())
}

// runError keeps the per-entry details in the log and returns a short summary.
func runError(action string, report *corpus.Report, err error) error {
	if err == nil {
		return nil
	}
	if report != nil && report.Failed() > 0 {
		return fmt.Errorf("%s失败: %d 个词条出错，详见日志", action, report.Failed())
	}
	return fmt.Errorf("%s失败: %w", action, err)
}
