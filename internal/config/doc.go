// Package config loads the page description used by the labelselect CLI.
//
// A page file is YAML (labelselect.yaml) or JSON (labelselect.json):
//
//	title: Language picker
//	server:
//	  addr: ":3000"
//	metrics:
//	  enabled: true
//	controls:
//	  - id: lang
//	    text: Pick a language
//	    width: 160px
//	    config:
//	      replacedLabelOnSelect: false
//	      theme: dark
//	      values:
//	        - {id: fr, label: French}
//	        - {id: de, label: German}
//
// Each control's config block is passed to the control verbatim, so it
// accepts the same keys as labelselect.Partial.
package config
