package blobstore

import "github.com/santhosh-tekuri/jsonschema/v5"

// stateSchema guards against loading a blob written by an incompatible
// version; anything that fails validation is discarded in favour of the seed.
var stateSchema = jsonschema.MustCompileString("state.json", `{
	"type": "object",
	"required": [
		"users", "students", "institutes", "courses", "batches",
		"bookings", "certificates", "payments", "reactivation_requests",
		"lessons", "enrollments"
	],
	"properties": {
		"users": {
			"type": "array",
			"items": {"type": "object", "required": ["userid", "email", "role"]}
		},
		"students": {
			"type": "array",
			"items": {"type": "object", "required": ["studid", "userid"]}
		},
		"institutes": {
			"type": "array",
			"items": {"type": "object", "required": ["instid", "userid", "verified_status"]}
		},
		"courses": {
			"type": "array",
			"items": {"type": "object", "required": ["courseid", "instid", "status"]}
		},
		"batches": {
			"type": "array",
			"items": {"type": "object", "required": ["batchid", "courseid", "seats_total", "seats_booked"]}
		},
		"bookings": {
			"type": "array",
			"items": {"type": "object", "required": ["bookid", "studid", "batchid"]}
		},
		"certificates": {
			"type": "array",
			"items": {"type": "object", "required": ["certid", "studid", "courseid"]}
		},
		"payments": {
			"type": "array",
			"items": {"type": "object", "required": ["payid", "bookid", "status"]}
		},
		"reactivation_requests": {
			"type": "array",
			"items": {"type": "object", "required": ["request_id", "instid", "status"]}
		},
		"lessons": {
			"type": "array",
			"items": {"type": "object", "required": ["lessonid", "courseid", "order_index"]}
		},
		"enrollments": {
			"type": "array",
			"items": {"type": "object", "required": ["enrollid", "studid", "courseid"]}
		}
	}
}`)
