package cache

// Keyer derives cache keys for the pipeline stages. Implementations must
// be deterministic: the same inputs always produce the same key.
type Keyer interface {
	// HTTPKey generates a key for a cached HTTP response.
	HTTPKey(namespace, key string) string

	// OutlineKey generates a key for a planner outline.
	OutlineKey(topic string, opts OutlineKeyOpts) string

	// PlanKey generates a key for a computed deck plan, derived from the
	// content hash of the outline and the layout parameters.
	PlanKey(outlineHash string, opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the content hash of the plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// OutlineKeyOpts are the options that affect outline generation.
type OutlineKeyOpts struct {
	SlideCount int
	Audience   string
	Model      string
}

// PlanKeyOpts are the options that affect plan computation.
type PlanKeyOpts struct {
	TemplateHash string
	LayoutIndex  int
	Width        float64
	Height       float64
	TuningHash   string
}

// ArtifactKeyOpts are the options that affect artifact rendering.
type ArtifactKeyOpts struct {
	Format     string
	ShowLabels bool
	ShowGrid   bool
	Branding   bool
}

// DefaultKeyer derives keys by hashing the option structs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http:"+namespace, key)
}

// OutlineKey generates a key for planner outline caching.
func (k *DefaultKeyer) OutlineKey(topic string, opts OutlineKeyOpts) string {
	return hashKey("outline", topic, opts)
}

// PlanKey generates a key for deck plan caching.
func (k *DefaultKeyer) PlanKey(outlineHash string, opts PlanKeyOpts) string {
	return hashKey("plan", outlineHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
