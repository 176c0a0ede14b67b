package fault

import (
    "errors"
    "fmt"
)

// Kind classifies a failure so callers can react without string matching.
type Kind int

const (
    Unknown Kind = iota
    UpstreamUnavailable
    UpstreamFormat
    UnsupportedCurrency
    UnknownAsset
    InvalidArgument
    AssetNotFound
    Persistence
)

func (k Kind) String() string {
    switch k {
    case UpstreamUnavailable:
        return "UpstreamUnavailable"
    case UpstreamFormat:
        return "UpstreamFormatError"
    case UnsupportedCurrency:
        return "UnsupportedCurrency"
    case UnknownAsset:
        return "UnknownAsset"
    case InvalidArgument:
        return "InvalidArgument"
    case AssetNotFound:
        return "AssetNotFound"
    case Persistence:
        return "PersistenceError"
    default:
        return "Unknown"
    }
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its kind.
var (
    ErrUpstreamUnavailable = errors.New("upstream unavailable")
    ErrUpstreamFormat      = errors.New("upstream format error")
    ErrUnsupportedCurrency = errors.New("unsupported currency")
    ErrUnknownAsset        = errors.New("unknown asset")
    ErrInvalidArgument     = errors.New("invalid argument")
    ErrAssetNotFound       = errors.New("asset not found")
    ErrPersistence         = errors.New("persistence error")
)

var sentinels = map[Kind]error{
    UpstreamUnavailable: ErrUpstreamUnavailable,
    UpstreamFormat:      ErrUpstreamFormat,
    UnsupportedCurrency: ErrUnsupportedCurrency,
    UnknownAsset:        ErrUnknownAsset,
    InvalidArgument:     ErrInvalidArgument,
    AssetNotFound:       ErrAssetNotFound,
    Persistence:         ErrPersistence,
}

// Error is a classified failure with a human-readable cause.
type Error struct {
    Kind Kind
    // Status is the upstream HTTP status when the failure came from a provider.
    Status int
    Msg    string
    Err    error
}

func (e *Error) Error() string {
    msg := e.Msg
    if e.Status != 0 {
        msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
    }
    if e.Err != nil {
        return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
    }
    return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
    s, ok := sentinels[e.Kind]
    return ok && s == target
}

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
    return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
    return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Upstream builds an UpstreamUnavailable error carrying the provider status.
func Upstream(status int, format string, args ...any) *Error {
    return &Error{Kind: UpstreamUnavailable, Status: status, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
    var fe *Error
    if errors.As(err, &fe) {
        return fe.Kind
    }
    return Unknown
}

// Detail returns the human-readable cause without the kind prefix.
func Detail(err error) string {
    var fe *Error
    if !errors.As(err, &fe) {
        return err.Error()
    }
    msg := fe.Msg
    if fe.Status != 0 {
        msg = fmt.Sprintf("%s (status %d)", msg, fe.Status)
    }
    if fe.Err != nil {
        msg = fmt.Sprintf("%s: %v", msg, fe.Err)
    }
    return msg
}
