package config

var defaults Config

func init() {
	yaml := []byte(`version: v1alpha1

editor:
  # Delay between a structural edit and moving focus into the new block,
  # so the host UI can lay it out first.
  focus_delay: 50ms
  # Preview mode of new sessions: desktop or mobile.
  default_mode: desktop

render:
  container_class: article-content
  # Number of rendered documents kept in memory.
  cache_size: 64

store:
  path: "storyblocks.db"

# The list of filters applied when rendering.
# "condition" must return a boolean value.
# You can learn about the syntax at https://expr-lang.org/docs/language-definition.
# Available fields are defined in [config.FilterDocumentEnv] and [config.FilterBlockEnv].
# filters:
#   # Skip documents without any heading.
#   - type: "FILTER_TYPE_DOCUMENT"
#     condition: "'heading' in kinds"
#   # Skip empty paragraphs.
#   - type: "FILTER_TYPE_BLOCK"
#     condition: "type != 'paragraph' || content != ''"

log:
  enabled: false
  path: "/tmp/storyblocks.log"
  verbose: false
`)

	cfg, err := parseYAML(yaml, &Config{})
	if err != nil {
		panic(err)
	}

	defaults = *cfg
}
