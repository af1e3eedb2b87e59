// Package tree builds the canonical node tree shared by all tree-shaped
// formats.
//
// # Overview
//
// A [Node] is either a group, which has ordered children, or a dataset, which
// has a shape, a dtype label and a bounded preview. Both carry a name, a path
// and a map of JSON-safe attributes. The root path is "/", and every other
// path is its parent's path with any trailing slash removed, followed by "/"
// and the node's own name.
//
// # Sources
//
// Format adapters do not build nodes themselves. They expose their native
// objects through two capability interfaces:
//
//   - [Group]: something with ordered, named members and attributes
//     (an HDF5 group, a .npz archive)
//   - [Leaf]: something with a shape, a dtype and data (an HDF5 dataset)
//
// Generic object graphs (unpickled objects, decoded documents) are already
// [value.Value] trees; [FromValue] wraps them into the same interfaces,
// applying the container classifier on the way: mappings become groups,
// sequences and sets whose first element is a container, array or table
// become groups with members "[0]", "[1]", ..., and everything else becomes a
// leaf.
//
// # Cycles and Depth
//
// The [Builder] tracks the identities of the sources on the current path and
// the recursion depth. Re-entering an ancestor or exceeding the maximum depth
// fails with an error coded [errors.ErrCodeCyclicStructure] instead of
// recursing without bound.
//
// # Example
//
//	b := tree.NewBuilder()
//	root, err := b.Build(tree.FromValue(v), "root", "/")
//	if err != nil {
//	    return err
//	}
//	json.NewEncoder(os.Stdout).Encode(root)
package tree
