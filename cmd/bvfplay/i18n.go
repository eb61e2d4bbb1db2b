package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Source":   "取得元",
		"Playback": "再生",
		"Trigger":  "開始信号",
		"MQTT":     "MQTT",
		"Debug":    "デバッグ",
		"Logging":  "ログ",

		// Root command
		"Play BVF character-cell video on a terminal": "BVF文字セル動画を端末で再生",

		// Commands
		"Play a local BVF file":                                "ローカルのBVFファイルを再生",
		"Fetch and play a part sequence on every start signal": "開始信号ごとにパート列を取得して再生",
		"Validate a BVF file and print its header":             "BVFファイルを検証しヘッダーを表示",
		"Show version information":                             "バージョン情報を表示",
		"bvfplay version %s":                                   "bvfplay バージョン %s",

		// Play flags
		"Frame to start playback at (1-based)":        "再生を開始するフレーム（1始まり）",
		"Replay the file until interrupted":           "中断されるまでファイルを繰り返し再生",
		"Frame rate used when the file declares none": "ファイルにフレームレートがない場合の値",
		"Frame rate used when a part declares none":   "パートにフレームレートがない場合の値",

		// Stream flags
		"YAML configuration file":                                                        "YAML設定ファイル",
		"Play a single cycle immediately and exit":                                       "1サイクルだけ即座に再生して終了",
		"Part URL or path template with the part index, e.g. https://host/part-%03d.bvf": "パート番号を含むURLまたはパスのテンプレート（例: https://host/part-%03d.bvf）",
		"Directory holding parts while they play":                                        "再生中のパートを置くディレクトリ",
		"Stop each cycle after this many parts (0 = unlimited)":                          "各サイクルで再生する最大パート数（0 = 無制限）",
		"Fetch attempts per part":                                                        "パートごとの取得試行回数",
		"Display width in cells":                                                         "表示幅（セル）",
		"Display height in cells":                                                        "表示高さ（セル）",
		"Start signal (gpio, mqtt, none)":                                                "開始信号（gpio, mqtt, none）",
		"GPIO value file of the start signal":                                            "開始信号のGPIO値ファイル",
		"Treat a low GPIO level as the start signal":                                     "GPIOのLowレベルを開始信号とする",
		"MQTT broker address (host:port)":                                                "MQTTブローカーのアドレス（host:port）",
		"MQTT topic carrying the start signal":                                           "開始信号を配信するMQTTトピック",
		"MQTT topic to publish part statistics to":                                       "パート統計を送信するMQTTトピック",
		"MQTT username":                                                                  "MQTTユーザー名",
		"MQTT password":                                                                  "MQTTパスワード",

		// Debug flags
		"Save frame snapshots and part stats to this directory":     "フレームのスナップショットとパート統計を保存するディレクトリ",
		"Save every Nth frame as PNG when a debug directory is set": "デバッグディレクトリ指定時にNフレームごとにPNGを保存",
		"Scale factor of frame snapshots":                           "スナップショットの拡大率",
		"Output playback summary to file (Markdown format)":         "再生サマリーをファイルに出力（Markdown形式）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Playing %s":                    "%s を再生中",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",

		// Error messages
		"A file argument is required":                                     "ファイル引数が必要です",
		"A part source is required (--source or source.url)":              "パートの取得元が必要です（--source または source.url）",
		"The part source must contain the part index, e.g. part-%03d.bvf": "取得元にはパート番号を含めてください（例: part-%03d.bvf）",
	})
}
