package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Waiting for start signal":                     "開始信号を待機中",
		"Starting playback cycle %s":                   "再生サイクル %s を開始します",
		"Playing part %d (%dx%d, %d frames at %d fps)": "パート %d を再生中 (%dx%d, %d フレーム, %d fps)",
		"Playback cycle finished: %d parts, %d frames": "再生サイクル完了: %d パート, %d フレーム",
		"Playback cycle ended early: %s":               "再生サイクルが途中で終了しました: %s",
		"Interrupted, shutting down...":                "中断されました。シャットダウン中...",
		"Playback finished":                            "再生が終了しました",
		"Playback stopped: part unavailable":           "再生を停止しました: パートを取得できません",

		// Orchestration level messages (warn/error)
		"Failed to fetch part %d: %s":                   "パート %d の取得に失敗しました: %s",
		"Failed to open part %d: %s":                    "パート %d を開けませんでした: %s",
		"Failed to remove %s: %s":                       "%s の削除に失敗しました: %s",
		"Skipping rest of part %d: frame %d failed: %s": "パート %d の残りをスキップします: フレーム %d が失敗しました: %s",
		"Playback of part %d failed: %s":                "パート %d の再生に失敗しました: %s",
		"Failed to report stats: %s":                    "統計の送信に失敗しました: %s",
		"Failed to update display: %s":                  "表示の更新に失敗しました: %s",
		"No parts played, pausing %s":                   "再生できるパートがないため %s 待機します",

		// Fetch stage
		"Fetch attempt %d/%d for part %d failed: %v": "パート %[3]d の取得試行 %[1]d/%[2]d が失敗しました: %[4]v",
		"Fetched part %d (%d bytes) on attempt %d":   "パート %d を取得しました (%d バイト, 試行 %d)",
		"Part %d does not exist":                     "パート %d は存在しません",

		// Play stage
		"Playing part %d: %d frames at %s per frame":          "パート %d: %d フレーム, 1フレームあたり %s",
		"Part %d finished: %d frames, %.2f fps, max drift %s": "パート %d 完了: %d フレーム, %.2f fps, 最大ドリフト %s",
		"Frame %d overran its slot by %s":                     "フレーム %d が枠を %s 超過しました",
		"Failed to save snapshot of frame %d: %v":             "フレーム %d のスナップショット保存に失敗しました: %v",

		// Trigger and MQTT
		"Start signal held, waiting for release": "開始信号が継続中のため解除を待機中",
		"Start signal at %s":                     "開始信号を受信: %s",
		"Sensor read failed: %v":                 "センサーの読み取りに失敗しました: %v",
		"Connected to %s":                        "%s に接続しました",
		"Connection to %s lost: %v":              "%s との接続が切れました: %v",
		"Subscribed to %s":                       "%s を購読しました",
		"Ignoring payload %q on %s":              "%[2]s のペイロード %[1]q を無視します",

		// CLI
		"bvfplay version %s":                          "bvfplay バージョン %s",
		"Playing %s":                                  "%s を再生中",
		"Summary saved to %s":                         "サマリーを %s に保存しました",
		"Loaded environment from %s":                  "%s から環境変数を読み込みました",
		"Header: %dx%d at %d fps, %d frames, %s":      "ヘッダー: %dx%d, %d fps, %d フレーム, %s",
		"Lines per frame: %d":                         "フレームあたりの行数: %d",
		"All %d frames decoded successfully":          "%d フレームすべてのデコードに成功しました",
		"Frame %d failed to decode: %v":               "フレーム %d のデコードに失敗しました: %v",
		"Header declares %d frames but %d were found": "ヘッダーは %d フレームを宣言していますが、%d フレームが見つかりました",
	})
}
