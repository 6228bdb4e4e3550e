package fixtures

// JSON Schemas the embedded documents are validated against before seeding.
// They pin the shape, required fields, and enums; business invariants beyond
// that are the services' problem.

const storesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "lat", "lng"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "lat": {"type": "number"},
      "lng": {"type": "number"},
      "address": {"type": "string"},
      "phone": {"type": "string"}
    }
  }
}`

const workersSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "store_id", "roles"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "store_id": {"type": "string", "minLength": 1},
      "roles": {
        "type": "array",
        "minItems": 1,
        "items": {"type": "string", "enum": ["hall", "kitchen", "cashier"]}
      },
      "rating": {"type": "number", "minimum": 0, "maximum": 5},
      "experience": {"type": "integer", "minimum": 0},
      "avatar": {"type": "string"}
    }
  }
}`

const shiftsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "store_id", "role", "start", "end", "status", "date"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "store_id": {"type": "string", "minLength": 1},
      "worker_id": {"type": "string"},
      "role": {"type": "string", "enum": ["hall", "kitchen", "cashier"]},
      "start": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
      "end": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
      "status": {"type": "string", "enum": ["normal", "shortage", "surplus"]},
      "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
      "support_worker_id": {"type": "string"},
      "notes": {"type": "string"}
    }
  }
}`

const publishingsSchema = `{
  "type": "object",
  "required": ["recruitings", "availables"],
  "properties": {
    "recruitings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "store_id", "shift_id", "role", "start", "end", "date", "open"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "store_id": {"type": "string", "minLength": 1},
          "shift_id": {"type": "string", "minLength": 1},
          "role": {"type": "string", "enum": ["hall", "kitchen", "cashier"]},
          "start": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
          "end": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
          "date": {"type": "string"},
          "open": {"type": "boolean"},
          "created_at": {"type": "integer"},
          "message": {"type": "string"},
          "matched_from_available_id": {"type": "string"}
        }
      }
    },
    "availables": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "store_id", "worker_id", "shift_id", "role", "start", "end", "date", "open"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "store_id": {"type": "string", "minLength": 1},
          "worker_id": {"type": "string", "minLength": 1},
          "shift_id": {"type": "string", "minLength": 1},
          "role": {"type": "string", "enum": ["hall", "kitchen", "cashier"]},
          "start": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
          "end": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
          "date": {"type": "string"},
          "open": {"type": "boolean"},
          "created_at": {"type": "integer"},
          "message": {"type": "string"},
          "matched_from_recruiting_id": {"type": "string"}
        }
      }
    }
  }
}`

const requestsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "from", "to", "type", "target_ids", "shift_id", "status"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "from": {"type": "string", "minLength": 1},
      "to": {"type": "string", "minLength": 1},
      "type": {"type": "string", "enum": ["recruiting", "dispatch"]},
      "target_ids": {"type": "array", "minItems": 1, "items": {"type": "string"}},
      "shift_id": {"type": "string", "minLength": 1},
      "target_shift_id": {"type": "string"},
      "status": {"type": "string", "enum": ["pending", "approved", "rejected", "invalid"]},
      "created_at": {"type": "integer"},
      "approved_at": {"type": "integer"},
      "message": {"type": "string"},
      "estimated_travel_minutes": {"type": "integer"}
    }
  }
}`
