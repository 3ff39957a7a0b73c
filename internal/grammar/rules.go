package grammar

import "github.com/ghettovoice/abnf"

// RFC 3986 Section 3.2.2 host rules.
//
// The scanners handle everything else with hand-written loops, these rules
// are used only to validate hosts.
var (
	digit = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})

	hexdig = abnf.Alt(
		"HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	alpha = abnf.Alt(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)

	colon  = abnf.Literal("\":\"", []byte{':'})
	dcolon = abnf.Literal("\"::\"", []byte{':', ':'})
	dot    = abnf.Literal("\".\"", []byte{'.'})

	unreserved = abnf.Alt(
		"unreserved",
		alpha,
		digit,
		abnf.Literal("\"-\"", []byte{'-'}),
		abnf.Literal("\".\"", []byte{'.'}),
		abnf.Literal("\"_\"", []byte{'_'}),
		abnf.Literal("\"~\"", []byte{'~'}),
	)

	subDelims = abnf.Alt(
		"sub-delims",
		abnf.Literal("\"!\"", []byte{'!'}),
		abnf.Literal("\"$\"", []byte{'$'}),
		abnf.Literal("\"&\"", []byte{'&'}),
		abnf.Literal("\"'\"", []byte{'\''}),
		abnf.Literal("\"(\"", []byte{'('}),
		abnf.Literal("\")\"", []byte{')'}),
		abnf.Literal("\"*\"", []byte{'*'}),
		abnf.Literal("\"+\"", []byte{'+'}),
		abnf.Literal("\",\"", []byte{','}),
		abnf.Literal("\";\"", []byte{';'}),
		abnf.Literal("\"=\"", []byte{'='}),
	)

	pctEncoded = abnf.Concat(
		"pct-encoded",
		abnf.Literal("\"%\"", []byte{'%'}),
		hexdig,
		hexdig,
	)

	// dec-octet = DIGIT / %x31-39 DIGIT / "1" 2DIGIT / "2" %x30-34 DIGIT / "25" %x30-35
	decOctet = abnf.Alt(
		"dec-octet",
		abnf.Concat(
			"\"25\" %x30-35",
			abnf.Literal("\"25\"", []byte{'2', '5'}),
			abnf.Range("%x30-35", []byte{0x30}, []byte{0x35}),
		),
		abnf.Concat(
			"\"2\" %x30-34 DIGIT",
			abnf.Literal("\"2\"", []byte{'2'}),
			abnf.Range("%x30-34", []byte{0x30}, []byte{0x34}),
			digit,
		),
		abnf.Concat(
			"\"1\" 2DIGIT",
			abnf.Literal("\"1\"", []byte{'1'}),
			abnf.RepeatN("2DIGIT", 2, digit),
		),
		abnf.Concat(
			"%x31-39 DIGIT",
			abnf.Range("%x31-39", []byte{0x31}, []byte{0x39}),
			digit,
		),
		digit,
	)

	ipv4Address = abnf.Concat(
		"IPv4address",
		decOctet, dot, decOctet, dot, decOctet, dot, decOctet,
	)

	h16 = abnf.Repeat("h16", 1, 4, hexdig)

	h16c = abnf.Concat("h16 \":\"", h16, colon)

	ls32 = abnf.Alt(
		"ls32",
		abnf.Concat("h16 \":\" h16", h16, colon, h16),
		ipv4Address,
	)

	ipv6Address = abnf.Alt(
		"IPv6address",
		abnf.Concat(
			"6( h16 \":\" ) ls32",
			abnf.RepeatN("6( h16 \":\" )", 6, h16c),
			ls32,
		),
		abnf.Concat(
			"\"::\" 5( h16 \":\" ) ls32",
			dcolon,
			abnf.RepeatN("5( h16 \":\" )", 5, h16c),
			ls32,
		),
		abnf.Concat(
			"[ h16 ] \"::\" 4( h16 \":\" ) ls32",
			abnf.Optional("[ h16 ]", h16),
			dcolon,
			abnf.RepeatN("4( h16 \":\" )", 4, h16c),
			ls32,
		),
		abnf.Concat(
			"[ *1( h16 \":\" ) h16 ] \"::\" 3( h16 \":\" ) ls32",
			abnf.Optional(
				"[ *1( h16 \":\" ) h16 ]",
				abnf.Concat("*1( h16 \":\" ) h16", abnf.Repeat("*1( h16 \":\" )", 0, 1, h16c), h16),
			),
			dcolon,
			abnf.RepeatN("3( h16 \":\" )", 3, h16c),
			ls32,
		),
		abnf.Concat(
			"[ *2( h16 \":\" ) h16 ] \"::\" 2( h16 \":\" ) ls32",
			abnf.Optional(
				"[ *2( h16 \":\" ) h16 ]",
				abnf.Concat("*2( h16 \":\" ) h16", abnf.Repeat("*2( h16 \":\" )", 0, 2, h16c), h16),
			),
			dcolon,
			abnf.RepeatN("2( h16 \":\" )", 2, h16c),
			ls32,
		),
		abnf.Concat(
			"[ *3( h16 \":\" ) h16 ] \"::\" h16 \":\" ls32",
			abnf.Optional(
				"[ *3( h16 \":\" ) h16 ]",
				abnf.Concat("*3( h16 \":\" ) h16", abnf.Repeat("*3( h16 \":\" )", 0, 3, h16c), h16),
			),
			dcolon,
			h16c,
			ls32,
		),
		abnf.Concat(
			"[ *4( h16 \":\" ) h16 ] \"::\" ls32",
			abnf.Optional(
				"[ *4( h16 \":\" ) h16 ]",
				abnf.Concat("*4( h16 \":\" ) h16", abnf.Repeat("*4( h16 \":\" )", 0, 4, h16c), h16),
			),
			dcolon,
			ls32,
		),
		abnf.Concat(
			"[ *5( h16 \":\" ) h16 ] \"::\" h16",
			abnf.Optional(
				"[ *5( h16 \":\" ) h16 ]",
				abnf.Concat("*5( h16 \":\" ) h16", abnf.Repeat("*5( h16 \":\" )", 0, 5, h16c), h16),
			),
			dcolon,
			h16,
		),
		abnf.Concat(
			"[ *6( h16 \":\" ) h16 ] \"::\"",
			abnf.Optional(
				"[ *6( h16 \":\" ) h16 ]",
				abnf.Concat("*6( h16 \":\" ) h16", abnf.Repeat("*6( h16 \":\" )", 0, 6, h16c), h16),
			),
			dcolon,
		),
	)

	// IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )
	ipvFuture = abnf.Concat(
		"IPvFuture",
		abnf.Literal("\"v\"", []byte{'v'}),
		abnf.Repeat1Inf("1*HEXDIG", hexdig),
		dot,
		abnf.Repeat1Inf(
			"1*( unreserved / sub-delims / \":\" )",
			abnf.Alt("unreserved / sub-delims / \":\"", unreserved, subDelims, colon),
		),
	)

	ipLiteral = abnf.Concat(
		"IP-literal",
		abnf.Literal("\"[\"", []byte{'['}),
		abnf.Alt("IPv6address / IPvFuture", ipv6Address, ipvFuture),
		abnf.Literal("\"]\"", []byte{']'}),
	)

	regName = abnf.Repeat0Inf(
		"reg-name",
		abnf.Alt("unreserved / pct-encoded / sub-delims", unreserved, pctEncoded, subDelims),
	)
)
