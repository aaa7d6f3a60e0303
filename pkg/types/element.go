package types

// Element is the capability an entity needs to be referenceable from an
// abstract structure: a store-unique name and a kind discriminator. Domain
// entities satisfy it by carrying the PersistentElement label, a unique
// `name` property, and a `kind` property; the engine matches them by name
// and never inspects their other attributes.
type Element interface {
	// ElementName returns the store-wide unique name of the entity.
	ElementName() string

	// ElementKind returns the discriminator recorded on the node so raw
	// queries remain interpretable without the engine.
	ElementKind() string

	// Saved reports whether the entity is durable in the store. Structural
	// operations reject unsaved operands with ErrUnsavedElement.
	Saved() bool
}

// Hashable is an Element whose content can be reduced to a stable hash.
// Sets deduplicate members and maps address keys by this value, so two
// elements with equal content must return equal hashes. The hash is a
// lowercase hex SHA-256 over a canonical rendering of the value.
type Hashable interface {
	Element

	// HashValue returns the content hash, or an error when the element
	// cannot be hashed in its current state (for example, unsaved).
	HashValue() (string, error)
}

// Node labels. Every node the engine creates carries LabelElement plus a
// concrete label equal to its kind; internal wrapper nodes additionally
// carry LabelStructItem so orphans stay findable by hand.
const (
	LabelElement    = "PersistentElement"
	LabelStructItem = "AbstractStructItem"
)

// Kind discriminators. Each doubles as the node's concrete label.
const (
	KindSimpleInteger        = "SimpleInteger"
	KindSimpleNumber         = "SimpleNumber"
	KindSimpleDate           = "SimpleDate"
	KindCompositeString      = "CompositeString"
	KindCompositeArrayString = "CompositeArrayString"
	KindCompositeArrayNumber = "CompositeArrayNumber"
	KindCompositeArrayDate   = "CompositeArrayDate"
	KindAbstractSet          = "AbstractSet"
	KindAbstractMap          = "AbstractMap"
	KindAbstractDLList       = "AbstractDLList"
	KindSetItem              = "SetItem"
	KindDLListItem           = "DLListItem"
)

// Relationship types of the graph schema.
const (
	RelSetElement = "SET_ELEMENT" // set anchor -> set item
	RelItemValue  = "ITEM_VALUE"  // wrapper item -> referenced element
	RelKeysSet    = "KEYS_SET"    // map anchor -> key set
	RelValuesSet  = "VALUES_SET"  // map anchor -> value set
	RelMapLink    = "MAP_LINK"    // key item -> paired value item
	RelNext       = "DLL_NXT"     // list item -> successor
	RelPrev       = "DLL_PRV"     // list item -> predecessor
	RelHead       = "DLL_HEAD"    // list anchor -> first item
	RelTail       = "DLL_TAIL"    // list anchor -> last item
)
