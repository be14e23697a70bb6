// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package markup converts nested Go values to XML elements and back, following
the mapping conventions of the Zimbra SOAP API.

# Mapping to markup

Serialize populates an element from a value:

  - mapping entries with a mapping value become child elements
  - mapping entries with a sequence value become one child element per item
  - mapping entries with a scalar value become attributes
  - the special key "_content" becomes the element's text
  - a scalar given directly becomes the element's text

Mappings may be given as markup.Pairs, *orderedmap.OrderedMap[string, any]
(both keep insertion order), any map with string keys (written in sorted key
order) or a struct (converted with mapstructure, written in sorted key order).

	node := xmltree.NewElement("GetFolderRequest")
	err := markup.Serialize(node, markup.Pairs{
	    markup.KV("folder", markup.Pairs{markup.KV("path", "/Inbox")}),
	})
	// <GetFolderRequest><folder path="/Inbox"/></GetFolderRequest>

# Markup to mapping

ToMap applies the reverse convention to a parsed etree element, which is how
response bodies are exposed as plain maps.
*/
package markup
