package config

var (
	// GlobalSchema defines the json schema for the global configuration
	GlobalSchema = `{
		"title": "Global config validation",
		"type": "object",
		"properties": {
			"listen": { "type": "string", "minLength": 1 },
			"root": { "type": "string", "minLength": 1 },
			"index": { "type": "string", "minLength": 1, "pattern": "^[^/\\\\]+$", "not": { "enum": [ ".", ".." ] } },
			"debug": { "type": "boolean" },
			"binary-charset": { "type": "boolean" },
			"silent-errors": { "type": "boolean" },
			"timeout": { "type": "integer", "minimum": 0 }
		},
		"required": [ "listen", "root", "index" ]
	}`
)
