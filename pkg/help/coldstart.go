package help

const ColdstartYAML = `# mangapress Quick Start

commands:
  basic_run: |
    mangapress run --input ./scans --output ./pressed --quarantine ./flagged --license-key $KEY

  config_file: |
    mangapress run --config config.yaml

  tuned_run: |
    mangapress run --input ./scans --output ./pressed --quarantine ./flagged \
      --workers 4 --keywords "adult,explicit" --license-key $KEY

  resume_interrupted: |
    mangapress run --config config.yaml --resume

  json_summary: |
    mangapress run --config config.yaml --format json

  list_history: |
    mangapress history

  batch_details: |
    mangapress history --batch 5
    mangapress history --batch 0   # latest

pipeline:
  - "extract: raster pages pulled out of each source document"
  - "transform: blank margins cropped, long strips split at blank gaps"
  - "fit: pages centered on the configured screen canvas"
  - "compress: rebuilt document optimized before delivery"
  - "route: explicit-keyword titles land in the quarantine folder"

config_keys:
  inputFolder: "folder of source documents (required)"
  outputFolder: "destination for accepted titles (required)"
  quarantineFolder: "destination for flagged titles (required)"
  licenseKey: "document container license key (required)"
  workerCount: "parallel title jobs, default CPU count"
  lightThreshold: "row is blank when every pixel is lighter (default 240)"
  darkThreshold: "or darker (default 15)"
  minRunLength: "blank rows needed to count as a run (default 20)"
  minGap: "blank rows needed to split a page (default 20)"
  minPageHeight: "never crop below this height (default 75)"
  screenWidth: "target canvas width, 0 disables fitting (default 1404)"
  screenHeight: "target canvas height (default 1872)"
  explicitKeywords: "title keywords that trigger quarantine"
  historyDB: "history database path, default next to the binary"

outputs:
  - "accepted titles: <outputFolder>/<Title_Name>.pdf"
  - "flagged titles: <quarantineFolder>/<Title_Name>.pdf"
  - "run manifest: <outputFolder>/batch-summary-YYYY-MM-DD.json"
  - "history database: mangapress.db next to the binary"

error_behavior:
  - "Configuration problems: exit 2 before any title is touched"
  - "A failed title never aborts the batch; it is reported as failed"
  - "Exit code is 0 after any completed batch"
`
