package catalog

// topicSchema is the JSON Schema every topic document must satisfy
// before it is accepted into the catalog. Structural rules that the
// schema cannot express (unique item ids across the catalog, enum
// cross-checks) live in Topic.Validate.
const topicSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "difficulty", "items"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "difficulty": {"enum": ["easy", "medium", "hard"]},
    "estimated_time": {"type": "string"},
    "sequence": {"type": "integer", "minimum": 0},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "type", "url", "points"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "type": {"enum": ["video", "article", "repo"]},
          "url": {"type": "string", "minLength": 1},
          "points": {"type": "integer", "minimum": 0},
          "tags": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
