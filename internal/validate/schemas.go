package validate

// Request schemas, mirroring the field rules the API documents:
// usernames are 3-30 alphanumeric characters, passwords at least 6
// characters, prices strictly positive. confirmPassword equality is a
// cross-field rule the controller checks itself.
var (
	Register = MustCompile(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["username", "email", "password", "confirmPassword"],
		"properties": {
			"username": {
				"type": "string",
				"pattern": "^[a-zA-Z0-9]+$",
				"minLength": 3,
				"maxLength": 30
			},
			"email": {"type": "string", "format": "email"},
			"password": {"type": "string", "minLength": 6},
			"confirmPassword": {"type": "string"}
		}
	}`)

	Login = MustCompile(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["username", "password"],
		"properties": {
			"username": {"type": "string", "minLength": 1},
			"password": {"type": "string", "minLength": 1}
		}
	}`)

	Product = MustCompile(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name", "price"],
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 255},
			"price": {"type": "number", "exclusiveMinimum": 0}
		}
	}`)
)
