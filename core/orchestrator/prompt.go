package orchestrator

import (
	"fmt"
	"strings"

	"coax/schema"
)

// augmentPrompt appends the JSON-only instructions and, when a schema is
// supplied, the schema serialized verbatim plus a per-field requirement list.
// The model sees exactly the contract the caller supplied.
func augmentPrompt(prompt string, desc *schema.Descriptor) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nRespond with a single valid JSON object and nothing else. ")
	sb.WriteString("No surrounding prose, no markdown fences, no comments, no trailing commas.")

	if desc == nil || len(desc.Properties) == 0 {
		return sb.String()
	}

	sb.WriteString("\n\nThe object must conform to this schema:\n")
	sb.WriteString(desc.JSON())
	sb.WriteString("\n\nFields:\n")
	for _, name := range desc.FieldNames() {
		prop := desc.Properties[name]
		requirement := "optional"
		if prop.Required {
			requirement = "required"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)", name, propertyType(prop), requirement))
		if prop.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(prop.Description)
		}
		sb.WriteByte('\n')
	}

	if required := desc.RequiredFields(); len(required) > 0 {
		sb.WriteString("Every required field must be present: ")
		sb.WriteString(strings.Join(required, ", "))
		sb.WriteByte('.')
	}
	return sb.String()
}

func propertyType(prop *schema.Property) string {
	if prop == nil || prop.Type == "" {
		return "any"
	}
	return string(prop.Type)
}

// classifyPrompt buckets a prompt for log context without leaking its
// content. The buckets mirror the record shapes the surrounding system asks
// for most.
func classifyPrompt(prompt string) string {
	lowered := strings.ToLower(prompt)
	switch {
	case strings.Contains(lowered, "emotion"):
		return "emotion"
	case strings.Contains(lowered, "energy"):
		return "energy"
	case strings.Contains(lowered, "psychological"):
		return "psychological"
	default:
		return "general"
	}
}
