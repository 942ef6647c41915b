package constants

// DefaultExpectedType is the load balancer type prefix accepted in a NameFilter.
// Only network load balancers ("net/...") hide their IPs from CloudFormation
const DefaultExpectedType = "net"

// DefaultDescriptionPrefix is prepended to a NameFilter to match the
// description AWS gives to ELB-owned network interfaces
const DefaultDescriptionPrefix = "ELB "

// IPAddressesKey is the attribute name returned to the stack via Fn::GetAtt
const IPAddressesKey = "IpAddresses"

// IPSeparator joins resolved addresses in the returned attribute
const IPSeparator = ", "

// PanicReason is sent as the failure reason if the handler panics
const PanicReason = "Function panicked, see log stream for details"
