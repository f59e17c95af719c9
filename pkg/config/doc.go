// Package config loads the YAML file that customises the contact form
// binaries: presentation text, validation messages, theme, server address and
// an optional replacement OpenAPI document.
//
//	title: Contact us
//	intro: <p>We reply within a day.</p>
//	submit_label: Send
//	log_level: info
//	server:
//	  addr: ":8080"
//	  base_path: /forms
//	theme:
//	  name: acme
//	  variant: dark
//	  tokens:
//	    cf-accent: "#0f766e"
//	messages:
//	  required: "{field} is required"
//	presets:
//	  fields:
//	    message:
//	      placeholder: Anything else?
//
// Relative schema paths resolve against the directory of the config file.
package config
